package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-checkout/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.TokenClaimStore = (*TokenClaimStore)(nil)

// TokenClaimStore implements ports.TokenClaimStore using Redis SET NX.
type TokenClaimStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewTokenClaimStore creates a new Redis-backed token claim store.
func NewTokenClaimStore(client goredis.UniversalClient) *TokenClaimStore {
	return &TokenClaimStore{
		client: client,
		prefix: keyPrefix + "claim:",
	}
}

// Claim marks transactionID as in flight for ttl.
// Returns false if the id is already claimed.
func (s *TokenClaimStore) Claim(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+transactionID, time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis token claim: %w", err)
	}
	return result == "OK", nil
}

// Release drops the claim so the id can be authorized again once its result expires.
func (s *TokenClaimStore) Release(ctx context.Context, transactionID string) error {
	if err := s.client.Del(ctx, s.prefix+transactionID).Err(); err != nil {
		return fmt.Errorf("redis token release: %w", err)
	}
	return nil
}
