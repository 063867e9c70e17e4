package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	keys map[string]time.Duration
	err  error
}

func newFakeStore() *fakeStore { return &fakeStore{keys: map[string]time.Duration{}} }

func (f *fakeStore) SetNX(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

var denyNow = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

func newTestDenylist(store *fakeStore) *TokenDenylist {
	d := &TokenDenylist{client: store}
	return d.WithClock(func() time.Time { return denyNow })
}

func TestTokenDenylist_ConsumeOnce(t *testing.T) {
	store := newFakeStore()
	d := newTestDenylist(store)
	ctx := context.Background()

	first, err := d.Consume(ctx, "jti-1", denyNow.Add(time.Hour))
	if err != nil || !first {
		t.Fatalf("first consume: got %v, %v", first, err)
	}
	again, err := d.Consume(ctx, "jti-1", denyNow.Add(time.Hour))
	if err != nil || again {
		t.Fatalf("replay must be rejected: got %v, %v", again, err)
	}
	if got := store.keys["reset:used:jti-1"]; got != time.Hour {
		t.Fatalf("expected key to live as long as the token (1h), got %s", got)
	}
}

func TestTokenDenylist_TTLClamp(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      time.Duration
	}{
		{"remaining life", denyNow.Add(30 * time.Minute), 30 * time.Minute},
		{"nearly expired", denyNow.Add(10 * time.Second), minDenyTTL},
		{"already expired", denyNow.Add(-time.Hour), minDenyTTL},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			if _, err := newTestDenylist(store).Consume(context.Background(), "jti", tc.expiresAt); err != nil {
				t.Fatalf("consume: %v", err)
			}
			if got := store.keys["reset:used:jti"]; got != tc.want {
				t.Fatalf("expected ttl %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTokenDenylist_ReleaseAllowsRetry(t *testing.T) {
	store := newFakeStore()
	d := newTestDenylist(store)
	ctx := context.Background()

	if _, err := d.Consume(ctx, "jti-2", denyNow.Add(time.Hour)); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if err := d.Release(ctx, "jti-2"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err := d.Consume(ctx, "jti-2", denyNow.Add(time.Hour))
	if err != nil || !ok {
		t.Fatalf("consume after release: got %v, %v", ok, err)
	}
}

func TestTokenDenylist_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	ok, err := newTestDenylist(store).Consume(context.Background(), "jti-3", denyNow.Add(time.Hour))
	if err == nil || ok {
		t.Fatalf("expected error, got %v, %v", ok, err)
	}
}
