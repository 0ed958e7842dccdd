package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/rs/zerolog"
)

// InitiativeWeb is the only initiative this backend validates for.
const InitiativeWeb = "web"

// MerchantValidationConfig holds the merchant identity defaults and the
// wallet operator hosts a validation URL may point at.
type MerchantValidationConfig struct {
	MerchantIdentifier string
	DisplayName        string
	InitiativeContext  string
	AllowedHosts       []string
}

type merchantValidationService struct {
	gateway ports.MerchantSessionGateway
	tokens  ports.TokenService
	cfg     MerchantValidationConfig
	allowed map[string]struct{}
	log     zerolog.Logger
}

// NewMerchantValidationService creates the merchant validation service.
func NewMerchantValidationService(
	gateway ports.MerchantSessionGateway,
	tokens ports.TokenService,
	cfg MerchantValidationConfig,
	log zerolog.Logger,
) ports.MerchantValidationService {
	allowed := make(map[string]struct{}, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		allowed[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	return &merchantValidationService{
		gateway: gateway,
		tokens:  tokens,
		cfg:     cfg,
		allowed: allowed,
		log:     log,
	}
}

// Validate asks the wallet operator for a merchant session and returns its
// payload untouched together with a fresh session token.
func (s *merchantValidationService) Validate(ctx context.Context, req domain.ValidationRequest) (*ports.MerchantValidation, error) {
	if err := s.checkURL(req.ValidationURL); err != nil {
		s.log.Warn().Str("validation_url", req.ValidationURL).Msg("rejected validation url")
		return nil, err
	}

	body := ports.MerchantSessionBody{
		MerchantIdentifier: firstNonEmpty(req.MerchantIdentifier, s.cfg.MerchantIdentifier),
		DisplayName:        firstNonEmpty(req.DisplayName, s.cfg.DisplayName),
		Initiative:         InitiativeWeb,
		InitiativeContext:  firstNonEmpty(req.InitiativeContext, s.cfg.InitiativeContext),
	}

	raw, err := s.gateway.RequestSession(ctx, req.ValidationURL, body)
	if err != nil {
		s.log.Error().Err(err).Str("merchant_identifier", body.MerchantIdentifier).Msg("merchant validation failed")
		return nil, apperror.ErrWalletOperatorRejected(err)
	}
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, apperror.ErrWalletOperatorRejected(fmt.Errorf("wallet operator returned an invalid payload"))
	}

	token, expiresAt, err := s.tokens.Issue(body.MerchantIdentifier)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	s.log.Info().
		Str("merchant_identifier", body.MerchantIdentifier).
		Str("initiative_context", body.InitiativeContext).
		Msg("merchant validated")

	return &ports.MerchantValidation{
		MerchantIdentifier: body.MerchantIdentifier,
		Payload:            raw,
		SessionToken:       token,
		ExpiresAt:          expiresAt,
	}, nil
}

func (s *merchantValidationService) checkURL(raw string) error {
	if raw == "" {
		return apperror.ErrInvalidValidationURL("validationURL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return apperror.ErrInvalidValidationURL("validationURL is not a valid URL")
	}
	if u.Scheme != "https" {
		return apperror.ErrInvalidValidationURL("validationURL must use https")
	}
	if u.User != nil {
		return apperror.ErrInvalidValidationURL("validationURL must not carry credentials")
	}
	if _, ok := s.allowed[strings.ToLower(u.Hostname())]; !ok {
		return apperror.ErrInvalidValidationURL("validationURL host is not allowed")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
