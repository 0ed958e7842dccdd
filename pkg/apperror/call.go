package apperror

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// CallKind classifies a failed call to an external service.
type CallKind string

const (
	KindTimeout   CallKind = "timeout"
	KindTransport CallKind = "transport"
	KindRejected  CallKind = "rejected"
)

// CallError is returned by every outbound adapter. Op names the call
// ("risk.collect", "backend.merchant_validation", ...).
type CallError struct {
	Kind       CallKind
	Op         string
	StatusCode int // set for KindRejected
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Timeout builds a KindTimeout error.
func Timeout(op string, err error) *CallError {
	return &CallError{Kind: KindTimeout, Op: op, Err: err}
}

// Transport builds a KindTransport error.
func Transport(op string, err error) *CallError {
	return &CallError{Kind: KindTransport, Op: op, Err: err}
}

// Rejected builds a KindRejected error for a non-2xx answer.
func Rejected(op string, statusCode int, err error) *CallError {
	return &CallError{Kind: KindRejected, Op: op, StatusCode: statusCode, Err: err}
}

// FromTransport classifies a raw client error: deadline overruns and
// network timeouts become KindTimeout, everything else KindTransport.
func FromTransport(op string, err error) *CallError {
	if isTimeout(err) {
		return Timeout(op, err)
	}
	return Transport(op, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// KindOf reports the CallKind of err. Errors that are not a *CallError are
// treated as transport failures, except deadline overruns.
func KindOf(err error) CallKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if isTimeout(err) {
		return KindTimeout
	}
	return KindTransport
}
