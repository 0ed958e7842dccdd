package ports

//go:generate mockgen -source=wallet.go -destination=mocks/mock_wallet.go -package=mocks

import (
	"context"

	"wallet-checkout/internal/core/domain"
)

// WalletPlatform is the wallet SDK entry point on the customer's device.
type WalletPlatform interface {
	// CanMakePayments reports whether the device and browser can present the sheet.
	CanMakePayments() bool
	// NewSession creates a fresh, not yet begun session for one attempt.
	NewSession(version int, req domain.PaymentRequest) (WalletSession, error)
}

// SessionHandlers are the callbacks a WalletSession delivers events to. The
// platform may invoke them from any goroutine; they must not block.
type SessionHandlers struct {
	OnValidateMerchant  func(validationURL string)
	OnPaymentAuthorized func(token domain.PaymentToken)
	OnCancel            func()
}

// WalletSession is the platform-owned payment sheet for one attempt.
// Handlers must be registered before Begin.
type WalletSession interface {
	SetHandlers(h SessionHandlers)
	Begin() error
	CompleteMerchantValidation(payload domain.ValidationPayload) error
	CompletePayment(status domain.CompletionStatus) error
	Abort() error
}

// RiskCollector produces the anti-fraud device session for an attempt.
type RiskCollector interface {
	CollectDeviceSignal(ctx context.Context, publicKey string) (domain.DeviceSignal, error)
}

// MerchantValidator exchanges a wallet validation URL for a merchant session.
type MerchantValidator interface {
	ValidateMerchant(ctx context.Context, req domain.ValidationRequest) (domain.ValidationPayload, error)
}

// PaymentAuthorizer submits a payment token for an approve or decline decision.
// sessionToken is the token issued alongside the validation payload.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, sessionToken string, req domain.AuthorizationRequest) (domain.AuthorizationResult, error)
}
