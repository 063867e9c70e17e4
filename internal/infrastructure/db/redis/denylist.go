package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minDenyTTL keeps a mark alive briefly even for tokens at the edge of expiry.
const minDenyTTL = time.Minute

// denyStore is the subset of the Redis client the denylist needs.
type denyStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TokenDenylist records consumed single-use token ids until the token expires.
// Key format: reset:used:<jti>
type TokenDenylist struct {
	client denyStore
	now    func() time.Time
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

// WithClock overrides the time source used to compute key expiry.
func (d *TokenDenylist) WithClock(now func() time.Time) *TokenDenylist {
	d.now = now
	return d
}

// Consume atomically marks id as used. It reports false when id was already marked.
func (d *TokenDenylist) Consume(ctx context.Context, id string, expiresAt time.Time) (bool, error) {
	now := d.now()
	ttl := expiresAt.Sub(now)
	if ttl < minDenyTTL {
		ttl = minDenyTTL
	}

	ok, err := d.client.SetNX(ctx, d.key(id), now.UTC().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("denylist consume: %w", err)
	}
	return ok, nil
}

// Release removes the mark so the token can be retried.
func (d *TokenDenylist) Release(ctx context.Context, id string) error {
	if err := d.client.Del(ctx, d.key(id)).Err(); err != nil {
		return fmt.Errorf("denylist release: %w", err)
	}
	return nil
}

func (d *TokenDenylist) key(id string) string {
	return "reset:used:" + id
}
