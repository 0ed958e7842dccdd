package postgres

import (
	"context"
	"fmt"
	"time"

	"wallet-checkout/internal/core/domain"
	"wallet-checkout/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// MaxAuditPage caps ListRecent.
const MaxAuditPage = 200

type auditRepo struct {
	pool Pool
}

// NewAuditRepository creates a PostgreSQL-backed AuditRepository.
func NewAuditRepository(pool Pool) ports.AuditRepository {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, merchant_identifier, action, resource_type, resource_id, details, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.MerchantIdentifier, string(log.Action), log.ResourceType,
		log.ResourceID, nullIfEmpty(log.Details), log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries for a merchant identifier, newest first.
func (r *auditRepo) ListRecent(ctx context.Context, merchantIdentifier string, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > MaxAuditPage {
		limit = MaxAuditPage
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, merchant_identifier, action, resource_type, resource_id, COALESCE(details::text, ''), ip_address, created_at
		 FROM audit_logs
		 WHERE merchant_identifier = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		merchantIdentifier, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AuditLog, error) {
		var l domain.AuditLog
		var action string
		err := row.Scan(&l.ID, &l.MerchantIdentifier, &action, &l.ResourceType,
			&l.ResourceID, &l.Details, &l.IPAddress, &l.CreatedAt)
		l.Action = domain.AuditAction(action)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan audit logs: %w", err)
	}
	return logs, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
