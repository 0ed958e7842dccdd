// Package wallet provides an in-process wallet platform. It behaves like the
// browser SDK from the merchant's side: sessions must be begun once, accept a
// single merchant validation and a single completion, and deliver customer
// actions through the registered handlers.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"

	"github.com/rs/zerolog"
)

// Supported API versions.
const (
	MinVersion = 1
	MaxVersion = 14
)

// Recorded method names.
const (
	MethodBegin                      = "begin"
	MethodCompleteMerchantValidation = "completeMerchantValidation"
	MethodCompletePayment            = "completePayment"
	MethodAbort                      = "abort"
)

var (
	ErrNotBegun           = errors.New("wallet session has not begun")
	ErrAlreadyBegun       = errors.New("wallet session already begun")
	ErrNoHandlers         = errors.New("wallet session handlers not registered")
	ErrAlreadyValidated   = errors.New("merchant validation already completed")
	ErrSessionClosed      = errors.New("wallet session is closed")
	ErrEmptyValidation    = errors.New("merchant validation payload is empty")
	ErrUnsupportedVersion = errors.New("unsupported wallet API version")
)

var (
	_ ports.WalletPlatform = (*Platform)(nil)
	_ ports.WalletSession  = (*Session)(nil)
)

// Platform is a simulated WalletPlatform.
type Platform struct {
	mu        sync.Mutex
	available bool
	sessions  []*Session
	log       zerolog.Logger
}

// NewPlatform creates a simulated platform. available drives CanMakePayments.
func NewPlatform(available bool, log zerolog.Logger) *Platform {
	return &Platform{available: available, log: log.With().Str("component", "wallet_simulator").Logger()}
}

// SetAvailable toggles CanMakePayments.
func (p *Platform) SetAvailable(v bool) {
	p.mu.Lock()
	p.available = v
	p.mu.Unlock()
}

// CanMakePayments implements ports.WalletPlatform.
func (p *Platform) CanMakePayments() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// NewSession implements ports.WalletPlatform.
func (p *Platform) NewSession(version int, req domain.PaymentRequest) (ports.WalletSession, error) {
	if version < MinVersion || version > MaxVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	s := &Session{version: version, request: req, changed: make(chan struct{}), log: p.log}

	p.mu.Lock()
	p.sessions = append(p.sessions, s)
	p.mu.Unlock()
	return s, nil
}

// Sessions returns every session created so far.
func (p *Platform) Sessions() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Session(nil), p.sessions...)
}

// LastSession returns the most recently created session, or nil.
func (p *Platform) LastSession() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sessions) == 0 {
		return nil
	}
	return p.sessions[len(p.sessions)-1]
}

// Call is one method invocation the merchant code made on a session. Calls
// are recorded even when the session rejects them. The payload carries the
// session token and is never serialized.
type Call struct {
	Method  string                    `json:"method"`
	Status  domain.CompletionStatus   `json:"status,omitempty"`
	Payload *domain.ValidationPayload `json:"-"`
}

// Session is a simulated WalletSession.
type Session struct {
	mu        sync.Mutex
	version   int
	request   domain.PaymentRequest
	handlers  ports.SessionHandlers
	begun     bool
	validated bool
	closed    bool
	calls     []Call
	changed   chan struct{}
	log       zerolog.Logger
}

// Version returns the API version the session was created with.
func (s *Session) Version() int {
	return s.version
}

// Request returns the payment request shown on the sheet.
func (s *Session) Request() domain.PaymentRequest {
	return s.request
}

// SetHandlers implements ports.WalletSession.
func (s *Session) SetHandlers(h ports.SessionHandlers) {
	s.mu.Lock()
	s.handlers = h
	s.mu.Unlock()
}

// Begin implements ports.WalletSession.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.begun {
		return ErrAlreadyBegun
	}
	if s.handlers.OnValidateMerchant == nil || s.handlers.OnPaymentAuthorized == nil || s.handlers.OnCancel == nil {
		return ErrNoHandlers
	}
	s.begun = true
	s.record(Call{Method: MethodBegin})
	return nil
}

// CompleteMerchantValidation implements ports.WalletSession.
func (s *Session) CompleteMerchantValidation(payload domain.ValidationPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(Call{Method: MethodCompleteMerchantValidation, Payload: &payload})
	if err := s.open(); err != nil {
		return err
	}
	if s.validated {
		return ErrAlreadyValidated
	}
	if len(payload.Raw) == 0 {
		return ErrEmptyValidation
	}
	s.validated = true
	return nil
}

// CompletePayment implements ports.WalletSession.
func (s *Session) CompletePayment(status domain.CompletionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(Call{Method: MethodCompletePayment, Status: status})
	if err := s.open(); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// Abort implements ports.WalletSession.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(Call{Method: MethodAbort})
	if err := s.open(); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// RequestValidation plays the sheet asking the merchant to validate.
func (s *Session) RequestValidation(validationURL string) error {
	h, err := s.handlersFor("validate_merchant")
	if err != nil {
		return err
	}
	h.OnValidateMerchant(validationURL)
	return nil
}

// AuthorizePayment plays the customer authorizing with Touch ID or Face ID.
func (s *Session) AuthorizePayment(token domain.PaymentToken) error {
	h, err := s.handlersFor("payment_authorized")
	if err != nil {
		return err
	}
	h.OnPaymentAuthorized(token)
	return nil
}

// Cancel plays the customer dismissing the sheet.
func (s *Session) Cancel() error {
	h, err := s.handlersFor("cancel")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	h.OnCancel()
	return nil
}

// Calls returns a copy of the recorded calls.
func (s *Session) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Count returns how many times method was called.
func (s *Session) Count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// WaitFor blocks until method has been called at least once or ctx ends.
func (s *Session) WaitFor(ctx context.Context, method string) (Call, error) {
	for {
		s.mu.Lock()
		for _, c := range s.calls {
			if c.Method == method {
				s.mu.Unlock()
				return c, nil
			}
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return Call{}, fmt.Errorf("waiting for %s: %w", method, ctx.Err())
		}
	}
}

// handlersFor copies the handlers so they run without s.mu held.
func (s *Session) handlersFor(event string) (ports.SessionHandlers, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.begun {
		return ports.SessionHandlers{}, ErrNotBegun
	}
	s.log.Debug().Str("event", event).Bool("closed", s.closed).Msg("dispatching wallet event")
	return s.handlers, nil
}

// open must be called with s.mu held.
func (s *Session) open() error {
	if !s.begun {
		return ErrNotBegun
	}
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}

// record must be called with s.mu held.
func (s *Session) record(c Call) {
	s.calls = append(s.calls, c)
	close(s.changed)
	s.changed = make(chan struct{})
}
