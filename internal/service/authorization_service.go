package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Authorization defaults.
const (
	DefaultResultTTL = 24 * time.Hour
	DefaultClaimTTL  = 2 * time.Minute
)

// AuthorizationConfig tunes the authorization service.
type AuthorizationConfig struct {
	ProcessingChannelID string
	ResultTTL           time.Duration
	ClaimTTL            time.Duration
}

type authorizationService struct {
	processor ports.ProcessorClient
	cache     ports.AuthorizationCache
	claims    ports.TokenClaimStore
	enc       ports.EncryptionService
	notifier  ports.OutcomeNotifier
	cfg       AuthorizationConfig
	log       zerolog.Logger
}

// NewAuthorizationService creates the authorization service. notifier may be nil.
func NewAuthorizationService(
	processor ports.ProcessorClient,
	cache ports.AuthorizationCache,
	claims ports.TokenClaimStore,
	enc ports.EncryptionService,
	notifier ports.OutcomeNotifier,
	cfg AuthorizationConfig,
	log zerolog.Logger,
) ports.AuthorizationService {
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = DefaultResultTTL
	}
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = DefaultClaimTTL
	}
	return &authorizationService{
		processor: processor,
		cache:     cache,
		claims:    claims,
		enc:       enc,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

// Authorize exchanges the wallet token for a processor token and requests a
// payment with it. A token that was already decided replays the first result.
func (s *authorizationService) Authorize(ctx context.Context, merchantIdentifier string, req domain.AuthorizationRequest) (*domain.AuthorizationResult, error) {
	if req.Amount <= 0 || req.Amount > domain.MaxMinorUnits(req.CurrencyCode) {
		return nil, apperror.ErrInvalidAmount()
	}

	walletType := req.WalletType
	if walletType == "" {
		walletType = domain.WalletTypeApplePay
	}
	if walletType != domain.WalletTypeApplePay && walletType != domain.WalletTypeGooglePay {
		return nil, apperror.Validation(fmt.Sprintf("unsupported wallet type %q", req.WalletType))
	}

	tokenKey := domain.TokenKey(req.TokenData)
	cacheKey := domain.BuildAuthorizationKey(merchantIdentifier, tokenKey)

	// 1. Replay a finished decision for the same token
	if cached := s.cached(ctx, cacheKey); cached != nil {
		s.log.Info().Str("token_key", tokenKey).Str("payment_id", cached.PaymentID).Msg("replaying cached authorization")
		return cached, nil
	}

	// 2. Guard against the same token being authorized concurrently
	claimed, err := s.claims.Claim(ctx, tokenKey, s.cfg.ClaimTTL)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("claiming token: %w", err))
	}
	if !claimed {
		return nil, apperror.ErrDuplicateAuthorization()
	}
	defer func() {
		if err := s.claims.Release(context.WithoutCancel(ctx), tokenKey); err != nil {
			s.log.Warn().Err(err).Str("token_key", tokenKey).Msg("failed to release token claim")
		}
	}()

	// A concurrent request may have finished between the first read and the claim
	if cached := s.cached(ctx, cacheKey); cached != nil {
		s.log.Info().Str("token_key", tokenKey).Str("payment_id", cached.PaymentID).Msg("replaying authorization finished while claiming")
		return cached, nil
	}

	// 3. Wallet token -> processor token
	sourceToken, err := s.processor.Tokenize(ctx, walletType, req.TokenData)
	if err != nil {
		s.log.Error().Err(err).Str("wallet_type", walletType).Msg("tokenization failed")
		return nil, apperror.ErrTokenizationFailed(err)
	}

	// 4. Payment request
	reference := fmt.Sprintf("%s-%s", walletType, uuid.NewString()[:8])
	payment, err := s.processor.RequestPayment(ctx, ports.ProcessorPaymentRequest{
		SourceToken:         sourceToken,
		BillingCountry:      req.CountryCode,
		Amount:              req.Amount,
		Currency:            req.CurrencyCode,
		Reference:           reference,
		ProcessingChannelID: s.cfg.ProcessingChannelID,
		DeviceSessionID:     req.DeviceSessionID,
		IdempotencyKey:      tokenKey,
	})
	if err != nil {
		s.log.Error().Err(err).Str("reference", reference).Msg("payment request failed")
		return nil, apperror.ErrProcessorFailure(err)
	}

	result := &domain.AuthorizationResult{
		Approved:  domain.IsApprovedStatus(payment.Status),
		Status:    payment.Status,
		PaymentID: payment.ID,
	}

	s.log.Info().
		Str("reference", reference).
		Str("payment_id", payment.ID).
		Str("status", payment.Status).
		Bool("approved", result.Approved).
		Msg("payment authorized")

	s.store(ctx, cacheKey, result)
	s.notify(ctx, domain.OutcomeNotification{
		EventType:     domain.EventPaymentAuthorized,
		PaymentID:     payment.ID,
		Reference:     reference,
		TransactionID: req.TokenData.Header.TransactionID,
		WalletType:    walletType,
		Status:        payment.Status,
		Approved:      result.Approved,
		Amount:        req.Amount,
		Currency:      req.CurrencyCode,
	})

	return result, nil
}

// cached returns a previously stored decision, or nil. Cache failures are
// logged and treated as a miss.
func (s *authorizationService) cached(ctx context.Context, key string) *domain.AuthorizationResult {
	sealed, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to read authorization cache")
		return nil
	}
	if sealed == nil {
		return nil
	}

	plain, err := s.enc.Decrypt(string(sealed))
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to open cached authorization")
		return nil
	}

	var result domain.AuthorizationResult
	if err := json.Unmarshal([]byte(plain), &result); err != nil {
		s.log.Warn().Err(err).Msg("failed to decode cached authorization")
		return nil
	}
	return &result
}

func (s *authorizationService) store(ctx context.Context, key string, result *domain.AuthorizationResult) {
	plain, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode authorization for cache")
		return
	}
	sealed, err := s.enc.Encrypt(string(plain))
	if err != nil {
		s.log.Warn().Err(apperror.ErrEncryptionFailure(err)).Msg("failed to seal authorization for cache")
		return
	}
	if err := s.cache.Set(context.WithoutCancel(ctx), key, []byte(sealed), s.cfg.ResultTTL); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache authorization")
	}
}

func (s *authorizationService) notify(ctx context.Context, n domain.OutcomeNotification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("payment_id", n.PaymentID).Msg("failed to enqueue outcome notification")
	}
}
