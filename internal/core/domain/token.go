package domain

import "encoding/json"

// PaymentToken is the encrypted credential produced by the wallet. It is
// never decrypted here and is forwarded field-for-field.
type PaymentToken struct {
	Version   string             `json:"version" validate:"required"`
	Data      string             `json:"data" validate:"required"`
	Signature string             `json:"signature" validate:"required"`
	Header    PaymentTokenHeader `json:"header"`
}

// PaymentTokenHeader carries the key agreement data and the wallet transaction id.
type PaymentTokenHeader struct {
	EphemeralPublicKey string `json:"ephemeralPublicKey"`
	PublicKeyHash      string `json:"publicKeyHash"`
	TransactionID      string `json:"transactionId" validate:"required"`
}

// DeviceSignal is the anti-fraud device session produced once per attempt.
type DeviceSignal struct {
	DeviceSessionID string
}

// ValidationRequest asks the backend to validate the merchant with the wallet operator.
type ValidationRequest struct {
	ValidationURL      string `json:"validationURL"`
	InitiativeContext  string `json:"initiativeContext"`
	MerchantIdentifier string `json:"merchantIdentifier"`
	DisplayName        string `json:"displayName"`
}

// ValidationPayload is the opaque merchant session returned by the wallet
// operator. Raw is handed to the wallet verbatim. SessionToken is issued by
// the backend and travels beside the payload, never inside it.
type ValidationPayload struct {
	Raw          json.RawMessage
	SessionToken string
}

// Wallet types understood by the authorization backend.
const (
	WalletTypeApplePay  = "applepay"
	WalletTypeGooglePay = "googlepay"
)

// AuthorizationRequest is the body sent to the authorization backend.
type AuthorizationRequest struct {
	TokenData       PaymentToken `json:"tokenData"`
	Amount          int64        `json:"amount"`
	CurrencyCode    string       `json:"currencyCode"`
	CountryCode     string       `json:"countryCode"`
	DeviceSessionID string       `json:"deviceSessionId,omitempty"`
	WalletType      string       `json:"walletType,omitempty"`
}

// AuthorizationResult is the backend's decision.
type AuthorizationResult struct {
	Approved  bool   `json:"approved"`
	Status    string `json:"status,omitempty"`
	PaymentID string `json:"paymentId,omitempty"`
}

// Processor statuses that count as an approval.
const (
	ProcessorStatusAuthorized = "Authorized"
	ProcessorStatusCaptured   = "Captured"
)

// IsApprovedStatus reports whether a processor payment status means the payment went through.
func IsApprovedStatus(status string) bool {
	return status == ProcessorStatusAuthorized || status == ProcessorStatusCaptured
}
