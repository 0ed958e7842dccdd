package orchestrator

import (
	"context"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"
)

// Attempt is the handle for one checkout attempt returned by Start.
// Fields below the marker are guarded by the owning Orchestrator's mutex.
type Attempt struct {
	id         string
	generation uint64
	cfg        domain.SessionConfig
	owner      *Orchestrator

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// guarded by owner.mu
	session            ports.WalletSession
	state              domain.SessionState
	validationResolved bool
	signal             domain.DeviceSignal
	sessionToken       string
	outcome            domain.SessionOutcome
}

// ID returns the attempt id used in logs and the outcome.
func (a *Attempt) ID() string {
	return a.id
}

// Generation returns the attempt's sequence number on its orchestrator.
func (a *Attempt) Generation() uint64 {
	return a.generation
}

// Config returns the normalized session config.
func (a *Attempt) Config() domain.SessionConfig {
	return a.cfg
}

// State returns the current handshake state.
func (a *Attempt) State() domain.SessionState {
	a.owner.mu.Lock()
	defer a.owner.mu.Unlock()
	return a.state
}

// Done is closed once the outcome is available. The wallet session has
// already received its completion call by then.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Outcome returns the outcome and true once the attempt is finished.
func (a *Attempt) Outcome() (domain.SessionOutcome, bool) {
	select {
	case <-a.done:
		return a.outcome, true
	default:
		return domain.SessionOutcome{}, false
	}
}

// Wait blocks until the attempt finishes or ctx is done.
func (a *Attempt) Wait(ctx context.Context) (domain.SessionOutcome, error) {
	select {
	case <-a.done:
		return a.outcome, nil
	case <-ctx.Done():
		return domain.SessionOutcome{}, ctx.Err()
	}
}
