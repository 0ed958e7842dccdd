package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionMerchantValidation AuditAction = "MERCHANT_VALIDATION"
	AuditActionAuthorizePayment   AuditAction = "AUTHORIZE_PAYMENT"
)

// AuditLog records one call against the checkout backend. It is an
// operational trail, not a transaction history.
type AuditLog struct {
	ID                 uuid.UUID   `json:"id"`
	MerchantIdentifier string      `json:"merchant_identifier,omitempty"`
	Action             AuditAction `json:"action"`
	ResourceType       string      `json:"resource_type"`
	ResourceID         string      `json:"resource_id,omitempty"`
	Details            string      `json:"details,omitempty"` // JSON string
	IPAddress          string      `json:"ip_address"`
	CreatedAt          time.Time   `json:"created_at"`
}
