package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, ErrSessionAlreadyActive()) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Session (WAL) ----

func ErrWalletUnavailable(reason string) *AppError {
	return New("WAL_001", "Wallet payments unavailable: "+reason, http.StatusServiceUnavailable)
}

func ErrSessionAlreadyActive() *AppError {
	return New("WAL_002", "A wallet session is already active", http.StatusConflict)
}

func ErrInvalidSessionConfig(message string) *AppError {
	return New("WAL_003", message, http.StatusBadRequest)
}

func ErrValidationFailed(err error) *AppError {
	return Wrap("WAL_004", "Security check or merchant validation failed", http.StatusBadGateway, err)
}

func ErrAuthorizationTransport(err error) *AppError {
	return Wrap("WAL_005", "Authorization request failed", http.StatusBadGateway, err)
}

// ---- Merchant Validation (VAL) ----

func ErrInvalidValidationURL(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrWalletOperatorRejected(err error) *AppError {
	return Wrap("VAL_002", "Wallet operator rejected merchant validation", http.StatusBadGateway, err)
}

// ---- Payment Authorization (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Invalid amount", http.StatusBadRequest)
}

func ErrDuplicateAuthorization() *AppError {
	return New("PAY_003", "Payment token is already being authorized", http.StatusConflict)
}

func ErrTokenizationFailed(err error) *AppError {
	return Wrap("PAY_004", "Tokenization failed", http.StatusBadGateway, err)
}

func ErrProcessorFailure(err error) *AppError {
	return Wrap("PAY_005", "Payment processor failure", http.StatusBadGateway, err)
}

// ---- Session Token (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired session token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}
