// Package orchestrator drives one wallet payment sheet through merchant
// validation, device telemetry, and authorization, and reports exactly one
// outcome per attempt.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options tunes the external calls made during a handshake.
type Options struct {
	RiskPublicKey        string
	RiskTimeout          time.Duration
	ValidationTimeout    time.Duration
	AuthorizationTimeout time.Duration
	WalletVersion        int
	WalletType           string
}

// DefaultOptions returns timeouts that fit inside the wallet operator's
// validation window.
func DefaultOptions() Options {
	return Options{
		RiskTimeout:          5 * time.Second,
		ValidationTimeout:    20 * time.Second,
		AuthorizationTimeout: 30 * time.Second,
		WalletVersion:        3,
		WalletType:           domain.WalletTypeApplePay,
	}
}

// Orchestrator owns at most one live Attempt at a time.
type Orchestrator struct {
	platform   ports.WalletPlatform
	risk       ports.RiskCollector
	validator  ports.MerchantValidator
	authorizer ports.PaymentAuthorizer
	opts       Options
	log        zerolog.Logger

	mu         sync.Mutex
	generation uint64
	active     *Attempt
}

// New creates an Orchestrator. Zero-valued options fall back to DefaultOptions.
func New(
	platform ports.WalletPlatform,
	risk ports.RiskCollector,
	validator ports.MerchantValidator,
	authorizer ports.PaymentAuthorizer,
	opts Options,
	log zerolog.Logger,
) *Orchestrator {
	def := DefaultOptions()
	if opts.RiskTimeout <= 0 {
		opts.RiskTimeout = def.RiskTimeout
	}
	if opts.ValidationTimeout <= 0 {
		opts.ValidationTimeout = def.ValidationTimeout
	}
	if opts.AuthorizationTimeout <= 0 {
		opts.AuthorizationTimeout = def.AuthorizationTimeout
	}
	if opts.WalletVersion <= 0 {
		opts.WalletVersion = def.WalletVersion
	}
	if opts.WalletType == "" {
		opts.WalletType = def.WalletType
	}
	return &Orchestrator{
		platform:   platform,
		risk:       risk,
		validator:  validator,
		authorizer: authorizer,
		opts:       opts,
		log:        log.With().Str("component", "orchestrator").Logger(),
	}
}

// Start validates cfg, creates a fresh wallet session, registers the event
// handlers and begins the session. It never creates a session when the
// platform or the risk collector is unavailable.
func (o *Orchestrator) Start(ctx context.Context, cfg domain.SessionConfig) (*Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, apperror.ErrInvalidSessionConfig(err.Error())
	}

	if err := o.checkAvailable(normalized.PaymentMode); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.active != nil {
		o.mu.Unlock()
		return nil, apperror.ErrSessionAlreadyActive()
	}
	o.generation++
	a := &Attempt{
		id:         uuid.New().String(),
		generation: o.generation,
		cfg:        normalized,
		owner:      o,
		done:       make(chan struct{}),
		state:      domain.StateIdle,
	}
	a.ctx, a.cancel = context.WithCancel(context.WithoutCancel(ctx))
	o.active = a
	o.mu.Unlock()

	session, err := o.platform.NewSession(o.opts.WalletVersion, normalized.PaymentRequest())
	if err != nil {
		o.abandon(a)
		return nil, apperror.ErrWalletUnavailable(err.Error())
	}

	o.mu.Lock()
	a.session = session
	o.transition(a, domain.StateStarted)
	o.mu.Unlock()

	session.SetHandlers(ports.SessionHandlers{
		OnValidateMerchant:  func(validationURL string) { o.onValidateMerchant(a, validationURL) },
		OnPaymentAuthorized: func(token domain.PaymentToken) { o.onPaymentAuthorized(a, token) },
		OnCancel:            func() { o.onCancel(a) },
	})

	if err := session.Begin(); err != nil {
		o.abandon(a)
		return nil, apperror.ErrWalletUnavailable(err.Error())
	}

	o.log.Info().
		Str("attempt_id", a.id).
		Uint64("generation", a.generation).
		Str("amount", normalized.Amount).
		Str("currency", normalized.CurrencyCode).
		Str("mode", string(normalized.PaymentMode)).
		Msg("wallet session started")
	return a, nil
}

func (o *Orchestrator) checkAvailable(mode domain.PaymentMode) error {
	if o.platform == nil || !o.platform.CanMakePayments() {
		return apperror.ErrWalletUnavailable("platform cannot make payments")
	}
	if o.risk == nil || o.opts.RiskPublicKey == "" {
		return apperror.ErrWalletUnavailable("risk collector not configured")
	}
	if o.validator == nil {
		return apperror.ErrWalletUnavailable("merchant validation not configured")
	}
	if mode == domain.PaymentModeProcess && o.authorizer == nil {
		return apperror.ErrWalletUnavailable("authorization backend not configured")
	}
	return nil
}

// abandon releases an attempt that never reached the customer.
func (o *Orchestrator) abandon(a *Attempt) {
	o.mu.Lock()
	if o.active == a {
		o.active = nil
	}
	a.state = domain.StateCancelled
	o.mu.Unlock()
	a.cancel()
}

// live reports whether a is still the active attempt and sits in want.
// Must be called with o.mu held.
func (o *Orchestrator) live(a *Attempt, want domain.SessionState) bool {
	return o.active == a && a.generation == o.generation && a.state == want
}

// transition must be called with o.mu held and only after the caller's
// guard has established that the move is legal.
func (o *Orchestrator) transition(a *Attempt, to domain.SessionState) {
	from := a.state
	if !from.CanTransition(to) {
		o.log.Error().
			Str("attempt_id", a.id).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("illegal state transition")
	}
	a.state = to
	o.log.Info().
		Str("attempt_id", a.id).
		Uint64("generation", a.generation).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("state transition")
}

// ignore must be called with o.mu held.
func (o *Orchestrator) ignore(a *Attempt, event string) {
	o.log.Warn().
		Str("attempt_id", a.id).
		Uint64("generation", a.generation).
		Str("state", string(a.state)).
		Str("event", event).
		Msg("ignoring wallet event")
}

func (o *Orchestrator) onValidateMerchant(a *Attempt, validationURL string) {
	o.mu.Lock()
	if !o.live(a, domain.StateStarted) {
		o.ignore(a, "validate_merchant")
		o.mu.Unlock()
		return
	}
	o.transition(a, domain.StateValidatingMerchant)
	o.mu.Unlock()

	go o.validateMerchant(a, validationURL)
}

func (o *Orchestrator) validateMerchant(a *Attempt, validationURL string) {
	riskCtx, cancel := context.WithTimeout(a.ctx, o.opts.RiskTimeout)
	signal, err := o.risk.CollectDeviceSignal(riskCtx, o.opts.RiskPublicKey)
	cancel()
	if err == nil && signal.DeviceSessionID == "" {
		err = errors.New("risk collector returned an empty device session id")
	}
	if err != nil {
		o.failValidation(a, "risk.collect", err)
		return
	}

	o.mu.Lock()
	if !o.live(a, domain.StateValidatingMerchant) {
		o.discard(a, "risk.collect")
		o.mu.Unlock()
		return
	}
	a.signal = signal
	o.mu.Unlock()

	valCtx, cancel := context.WithTimeout(a.ctx, o.opts.ValidationTimeout)
	payload, err := o.validator.ValidateMerchant(valCtx, domain.ValidationRequest{
		ValidationURL:      validationURL,
		InitiativeContext:  a.cfg.InitiativeContext,
		MerchantIdentifier: a.cfg.MerchantIdentifier,
		DisplayName:        a.cfg.DisplayName,
	})
	cancel()
	if err != nil {
		o.failValidation(a, "merchant_validation", err)
		return
	}

	// The wallet may emit payment-authorized as soon as it holds the
	// payload, so the attempt is marked resolved before handing it over.
	o.mu.Lock()
	if !o.live(a, domain.StateValidatingMerchant) {
		o.discard(a, "merchant_validation")
		o.mu.Unlock()
		return
	}
	a.sessionToken = payload.SessionToken
	a.validationResolved = true
	session := a.session
	o.mu.Unlock()

	if err := session.CompleteMerchantValidation(payload); err != nil {
		o.failValidation(a, "complete_merchant_validation", err)
		return
	}
	o.log.Debug().Str("attempt_id", a.id).Msg("merchant validation resolved")
}

func (o *Orchestrator) failValidation(a *Attempt, step string, cause error) {
	o.mu.Lock()
	if !o.live(a, domain.StateValidatingMerchant) {
		o.discard(a, step)
		o.mu.Unlock()
		return
	}
	o.transition(a, domain.StateValidationFailed)
	session := a.session
	o.mu.Unlock()

	o.log.Warn().
		Err(cause).
		Str("attempt_id", a.id).
		Str("step", step).
		Str("kind", string(apperror.KindOf(cause))).
		Msg("merchant validation failed")

	if err := session.Abort(); err != nil {
		o.log.Warn().Err(err).Str("attempt_id", a.id).Msg("wallet session abort failed")
	}
	reason := apperror.ErrValidationFailed(fmt.Errorf("%s: %w", step, cause)).Error()
	o.finish(a, domain.FailedOutcome(a.id, domain.FailureValidation, reason))
}

func (o *Orchestrator) onPaymentAuthorized(a *Attempt, token domain.PaymentToken) {
	o.mu.Lock()
	if !o.live(a, domain.StateValidatingMerchant) || !a.validationResolved {
		o.ignore(a, "payment_authorized")
		o.mu.Unlock()
		return
	}
	o.transition(a, domain.StateAuthorizing)

	if a.cfg.PaymentMode == domain.PaymentModeTokenOnly {
		o.transition(a, domain.StateApproved)
		o.mu.Unlock()
		o.complete(a, domain.CompletionSuccess, domain.ApprovedOutcome(a.id, token, ""))
		return
	}

	req := domain.AuthorizationRequest{
		TokenData:       token,
		Amount:          a.cfg.MinorAmount(),
		CurrencyCode:    a.cfg.CurrencyCode,
		CountryCode:     a.cfg.CountryCode,
		DeviceSessionID: a.signal.DeviceSessionID,
		WalletType:      o.opts.WalletType,
	}
	sessionToken := a.sessionToken
	o.mu.Unlock()

	go o.authorize(a, sessionToken, req)
}

func (o *Orchestrator) authorize(a *Attempt, sessionToken string, req domain.AuthorizationRequest) {
	ctx, cancel := context.WithTimeout(a.ctx, o.opts.AuthorizationTimeout)
	result, err := o.authorizer.Authorize(ctx, sessionToken, req)
	cancel()
	o.settleAuthorization(a, req.TokenData, result, err)
}

func (o *Orchestrator) settleAuthorization(a *Attempt, token domain.PaymentToken, result domain.AuthorizationResult, err error) {
	o.mu.Lock()
	if !o.live(a, domain.StateAuthorizing) {
		o.discard(a, "authorize")
		o.mu.Unlock()
		return
	}

	var (
		outcome domain.SessionOutcome
		status  domain.CompletionStatus
	)
	switch {
	case err != nil:
		o.transition(a, domain.StateAuthorizationFailed)
		reason := apperror.ErrAuthorizationTransport(err).Error()
		outcome = domain.FailedOutcome(a.id, domain.FailureAuthorizationTransport, reason)
		status = domain.CompletionFailure
	case result.Approved:
		o.transition(a, domain.StateApproved)
		outcome = domain.ApprovedOutcome(a.id, token, result.PaymentID)
		status = domain.CompletionSuccess
	default:
		o.transition(a, domain.StateDeclined)
		outcome = domain.DeclinedOutcome(a.id, token, result.PaymentID)
		status = domain.CompletionFailure
	}
	o.mu.Unlock()

	if err != nil {
		o.log.Warn().
			Err(err).
			Str("attempt_id", a.id).
			Str("kind", string(apperror.KindOf(err))).
			Msg("authorization call failed")
	}
	o.complete(a, status, outcome)
}

func (o *Orchestrator) onCancel(a *Attempt) {
	o.mu.Lock()
	if o.active != a || a.generation != o.generation || a.state.IsTerminal() || a.state == domain.StateIdle {
		o.ignore(a, "cancel")
		o.mu.Unlock()
		return
	}
	o.transition(a, domain.StateCancelled)
	o.mu.Unlock()

	a.cancel()
	o.finish(a, domain.CancelledOutcome(a.id))
}

// discard logs a late result for an attempt that already moved on.
// Must be called with o.mu held.
func (o *Orchestrator) discard(a *Attempt, step string) {
	o.log.Info().
		Str("attempt_id", a.id).
		Uint64("generation", a.generation).
		Str("state", string(a.state)).
		Str("step", step).
		Msg("discarding late result")
}

func (o *Orchestrator) complete(a *Attempt, status domain.CompletionStatus, outcome domain.SessionOutcome) {
	o.mu.Lock()
	session := a.session
	o.mu.Unlock()

	if err := session.CompletePayment(status); err != nil {
		o.log.Warn().Err(err).Str("attempt_id", a.id).Str("status", string(status)).Msg("wallet session completion failed")
	}
	o.finish(a, outcome)
}

// finish publishes the outcome and frees the orchestrator for the next
// Start. It runs once per attempt, after the terminal transition.
func (o *Orchestrator) finish(a *Attempt, outcome domain.SessionOutcome) {
	o.mu.Lock()
	a.outcome = outcome
	a.signal = domain.DeviceSignal{}
	a.sessionToken = ""
	if o.active == a {
		o.active = nil
	}
	o.mu.Unlock()

	a.cancel()
	close(a.done)

	ev := o.log.Info().
		Str("attempt_id", a.id).
		Uint64("generation", a.generation).
		Str("outcome", string(outcome.Kind))
	if outcome.Failure != nil {
		ev = ev.Str("failure_kind", string(outcome.Failure.Kind))
	}
	ev.Msg("wallet session finished")
}
