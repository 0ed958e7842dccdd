package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"encoding/json"
	"time"

	"wallet-checkout/internal/core/domain"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(payload string) string
	Verify(payload string, signature string) bool
	// BuildSigningPayload joins an RFC3339Nano timestamp and a canonical JSON body.
	BuildSigningPayload(timestamp time.Time, canonicalBody []byte) string
}

// TokenService issues and checks the short-lived session token handed out
// with a merchant validation and required on authorization.
type TokenService interface {
	Issue(merchantIdentifier string) (string, time.Time, error)
	Validate(tokenString string) (*SessionClaims, error)
}

// SessionClaims holds the parsed session token claims.
type SessionClaims struct {
	MerchantIdentifier string
	SessionID          string
	ExpiresAt          time.Time
}

// AuditService records audit entries without blocking the request.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// MerchantSessionGateway talks to the wallet operator's validation endpoint
// over mutual TLS.
type MerchantSessionGateway interface {
	RequestSession(ctx context.Context, validationURL string, body MerchantSessionBody) (json.RawMessage, error)
}

// MerchantSessionBody is the body the wallet operator expects.
type MerchantSessionBody struct {
	MerchantIdentifier string `json:"merchantIdentifier"`
	DisplayName        string `json:"displayName"`
	Initiative         string `json:"initiative"`
	InitiativeContext  string `json:"initiativeContext"`
}

// ProcessorClient is the payment processor: it swaps a wallet token for a
// processor token and requests a payment with it.
type ProcessorClient interface {
	Tokenize(ctx context.Context, walletType string, token domain.PaymentToken) (string, error)
	RequestPayment(ctx context.Context, req ProcessorPaymentRequest) (*ProcessorPayment, error)
}

// ProcessorPaymentRequest is a card payment funded by a processor token.
type ProcessorPaymentRequest struct {
	SourceToken         string
	BillingCountry      string
	Amount              int64
	Currency            string
	Reference           string
	ProcessingChannelID string
	DeviceSessionID     string
	// IdempotencyKey is stable per wallet token. Reference is used when empty.
	IdempotencyKey string
}

// ProcessorPayment is the processor's answer to a payment request.
type ProcessorPayment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// --- Service Ports (Business Logic) ---

// MerchantValidationService validates the merchant with the wallet operator.
type MerchantValidationService interface {
	Validate(ctx context.Context, req domain.ValidationRequest) (*MerchantValidation, error)
}

// MerchantValidation is the verbatim operator payload plus the issued session token.
type MerchantValidation struct {
	MerchantIdentifier string
	Payload            json.RawMessage
	SessionToken       string
	ExpiresAt          time.Time
}

// AuthorizationService authorizes a wallet token with the processor.
type AuthorizationService interface {
	Authorize(ctx context.Context, merchantIdentifier string, req domain.AuthorizationRequest) (*domain.AuthorizationResult, error)
}

// OutcomeNotifier delivers authorization decisions to the merchant asynchronously.
type OutcomeNotifier interface {
	Notify(ctx context.Context, n domain.OutcomeNotification) error
}
