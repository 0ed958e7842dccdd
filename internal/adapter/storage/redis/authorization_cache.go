package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-checkout/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.AuthorizationCache = (*AuthorizationCache)(nil)

// AuthorizationCache implements ports.AuthorizationCache using Redis.
// Values are opaque sealed blobs.
type AuthorizationCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewAuthorizationCache creates a new Redis-backed authorization cache.
func NewAuthorizationCache(client goredis.UniversalClient) *AuthorizationCache {
	return &AuthorizationCache{
		client: client,
		prefix: keyPrefix + "authz:",
	}
}

// Get retrieves a sealed result. Returns nil, nil if the key does not exist.
func (c *AuthorizationCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis authorization get: %w", err)
	}
	return val, nil
}

// Set stores a sealed result with TTL.
func (c *AuthorizationCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis authorization set: %w", err)
	}
	return nil
}
