package domain

import "time"

// OutcomeKind is the terminal result of one checkout attempt.
type OutcomeKind string

const (
	OutcomeApproved  OutcomeKind = "APPROVED"
	OutcomeDeclined  OutcomeKind = "DECLINED"
	OutcomeFailed    OutcomeKind = "FAILED"
	OutcomeCancelled OutcomeKind = "CANCELLED"
)

// FailureKind tells a failed validation apart from a failed authorization call.
type FailureKind string

const (
	FailureValidation             FailureKind = "VALIDATION_ERROR"
	FailureAuthorizationTransport FailureKind = "AUTHORIZATION_TRANSPORT_ERROR"
)

// CompletionStatus is the two-value status reported back to the wallet sheet.
type CompletionStatus string

const (
	CompletionSuccess CompletionStatus = "SUCCESS"
	CompletionFailure CompletionStatus = "FAILURE"
)

// Failure explains a FAILED outcome.
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// SessionOutcome is produced exactly once per attempt and never changes afterwards.
type SessionOutcome struct {
	AttemptID   string        `json:"attemptId"`
	Kind        OutcomeKind   `json:"kind"`
	Token       *PaymentToken `json:"token,omitempty"`
	PaymentID   string        `json:"paymentId,omitempty"`
	Failure     *Failure      `json:"failure,omitempty"`
	CompletedAt time.Time     `json:"completedAt"`
}

// Approved reports whether the payment went through.
func (o SessionOutcome) Approved() bool {
	return o.Kind == OutcomeApproved
}

// ApprovedOutcome builds an APPROVED outcome carrying the token.
func ApprovedOutcome(attemptID string, token PaymentToken, paymentID string) SessionOutcome {
	return SessionOutcome{AttemptID: attemptID, Kind: OutcomeApproved, Token: &token, PaymentID: paymentID, CompletedAt: time.Now().UTC()}
}

// DeclinedOutcome builds a DECLINED outcome carrying the token.
func DeclinedOutcome(attemptID string, token PaymentToken, paymentID string) SessionOutcome {
	return SessionOutcome{AttemptID: attemptID, Kind: OutcomeDeclined, Token: &token, PaymentID: paymentID, CompletedAt: time.Now().UTC()}
}

// FailedOutcome builds a FAILED outcome.
func FailedOutcome(attemptID string, kind FailureKind, reason string) SessionOutcome {
	return SessionOutcome{AttemptID: attemptID, Kind: OutcomeFailed, Failure: &Failure{Kind: kind, Reason: reason}, CompletedAt: time.Now().UTC()}
}

// CancelledOutcome builds a CANCELLED outcome.
func CancelledOutcome(attemptID string) SessionOutcome {
	return SessionOutcome{AttemptID: attemptID, Kind: OutcomeCancelled, CompletedAt: time.Now().UTC()}
}
