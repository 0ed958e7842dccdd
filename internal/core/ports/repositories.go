package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"time"

	"wallet-checkout/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListRecent(ctx context.Context, merchantIdentifier string, limit int) ([]domain.AuditLog, error)
}

// AuthorizationCache holds sealed authorization results keyed by wallet
// transaction id so a resubmitted token replays the first decision.
type AuthorizationCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TokenClaimStore guards a wallet transaction id while it is being authorized.
type TokenClaimStore interface {
	// Claim atomically marks the transaction id as in flight.
	// Returns false if another request already holds it.
	Claim(ctx context.Context, transactionID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, transactionID string) error
}
