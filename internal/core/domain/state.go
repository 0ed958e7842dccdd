package domain

// SessionState is a step of the wallet handshake.
type SessionState string

const (
	StateIdle                SessionState = "IDLE"
	StateStarted             SessionState = "STARTED"
	StateValidatingMerchant  SessionState = "VALIDATING_MERCHANT"
	StateValidationFailed    SessionState = "VALIDATION_FAILED"
	StateAuthorizing         SessionState = "AUTHORIZING"
	StateApproved            SessionState = "APPROVED"
	StateDeclined            SessionState = "DECLINED"
	StateAuthorizationFailed SessionState = "AUTHORIZATION_FAILED"
	StateCancelled           SessionState = "CANCELLED"
)

var transitions = map[SessionState][]SessionState{
	StateIdle:               {StateStarted},
	StateStarted:            {StateValidatingMerchant, StateCancelled},
	StateValidatingMerchant: {StateValidationFailed, StateAuthorizing, StateCancelled},
	StateAuthorizing:        {StateApproved, StateDeclined, StateAuthorizationFailed, StateCancelled},
}

// IsTerminal reports whether no further transition is possible.
func (s SessionState) IsTerminal() bool {
	switch s {
	case StateApproved, StateDeclined, StateAuthorizationFailed, StateValidationFailed, StateCancelled:
		return true
	}
	return false
}

// CanTransition reports whether to is a legal successor of s.
func (s SessionState) CanTransition(to SessionState) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
