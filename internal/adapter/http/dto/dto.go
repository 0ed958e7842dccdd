package dto

import (
	"time"

	"wallet-checkout/internal/core/domain"
)

// MerchantValidationRequest is the body of POST /api/v1/merchant-validation.
// Empty merchant fields fall back to the configured defaults.
type MerchantValidationRequest struct {
	ValidationURL      string `json:"validationURL" binding:"required,safe_url,max=2048"`
	InitiativeContext  string `json:"initiativeContext" binding:"omitempty,hostname_rfc1123,max=255"`
	MerchantIdentifier string `json:"merchantIdentifier" binding:"omitempty,safe_id,max=255"`
	DisplayName        string `json:"displayName" binding:"omitempty,max=64"`
}

// ToDomain converts the request into a domain.ValidationRequest.
func (r MerchantValidationRequest) ToDomain() domain.ValidationRequest {
	return domain.ValidationRequest{
		ValidationURL:      r.ValidationURL,
		InitiativeContext:  r.InitiativeContext,
		MerchantIdentifier: r.MerchantIdentifier,
		DisplayName:        r.DisplayName,
	}
}

// PaymentTokenHeader mirrors domain.PaymentTokenHeader.
type PaymentTokenHeader struct {
	EphemeralPublicKey string `json:"ephemeralPublicKey" binding:"omitempty,base64"`
	PublicKeyHash      string `json:"publicKeyHash" binding:"omitempty,base64"`
	TransactionID      string `json:"transactionId" binding:"omitempty,safe_id,max=128"`
}

// PaymentToken mirrors domain.PaymentToken. The encrypted fields are opaque.
type PaymentToken struct {
	Version   string             `json:"version" binding:"required,max=32"`
	Data      string             `json:"data" binding:"required"`
	Signature string             `json:"signature" binding:"required"`
	Header    PaymentTokenHeader `json:"header"`
}

// AuthorizePaymentRequest is the body of POST /api/v1/authorize-payment.
// The token is forwarded to the processor exactly as received.
type AuthorizePaymentRequest struct {
	TokenData       PaymentToken `json:"tokenData" binding:"required" sanitize:"-"`
	Amount          int64        `json:"amount" binding:"required,gt=0"`
	CurrencyCode    string       `json:"currencyCode" binding:"required,iso4217"`
	CountryCode     string       `json:"countryCode" binding:"required,iso3166_1_alpha2"`
	DeviceSessionID string       `json:"deviceSessionId" binding:"omitempty,safe_id,max=128"`
	WalletType      string       `json:"walletType" binding:"omitempty,oneof=applepay googlepay"`
}

// ToDomain converts the request into a domain.AuthorizationRequest.
func (r AuthorizePaymentRequest) ToDomain() domain.AuthorizationRequest {
	return domain.AuthorizationRequest{
		TokenData: domain.PaymentToken{
			Version:   r.TokenData.Version,
			Data:      r.TokenData.Data,
			Signature: r.TokenData.Signature,
			Header: domain.PaymentTokenHeader{
				EphemeralPublicKey: r.TokenData.Header.EphemeralPublicKey,
				PublicKeyHash:      r.TokenData.Header.PublicKeyHash,
				TransactionID:      r.TokenData.Header.TransactionID,
			},
		},
		Amount:          r.Amount,
		CurrencyCode:    r.CurrencyCode,
		CountryCode:     r.CountryCode,
		DeviceSessionID: r.DeviceSessionID,
		WalletType:      r.WalletType,
	}
}

// AuditLogResponse is one entry of GET /api/v1/audit-logs.
type AuditLogResponse struct {
	ID           string `json:"id"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id,omitempty"`
	IPAddress    string `json:"ip_address"`
	CreatedAt    string `json:"created_at"`
}

// AuditLogListResponse wraps the audit entries.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Count int                `json:"count"`
}

// ToAuditLogList converts audit entries for the API.
func ToAuditLogList(logs []domain.AuditLog) AuditLogListResponse {
	items := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, AuditLogResponse{
			ID:           l.ID.String(),
			Action:       string(l.Action),
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			IPAddress:    l.IPAddress,
			CreatedAt:    l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return AuditLogListResponse{Items: items, Count: len(items)}
}
