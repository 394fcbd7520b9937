package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReplayLedger implements ports.ReplayLedger using Redis SET NX. SET NX is
// linearizable per key, which gives the one guarantee the payment core
// needs: of N concurrent submissions of the same proof identity, exactly
// one observes "new".
type ReplayLedger struct {
	client *goredis.Client
	prefix string
}

// NewReplayLedger creates a new Redis-backed replay ledger.
func NewReplayLedger(client *goredis.Client) *ReplayLedger {
	return &ReplayLedger{
		client: client,
		prefix: "proof:",
	}
}

// CheckAndSet atomically records a proof identity. Returns true if the
// identity was new, false if it was already consumed. ttl bounds ledger
// growth; zero means the entry never expires.
func (l *ReplayLedger) CheckAndSet(ctx context.Context, identity string, ttl time.Duration) (bool, error) {
	key := l.prefix + identity
	result, err := l.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists — proof was already consumed
			return false, nil
		}
		return false, fmt.Errorf("redis replay check: %w", err)
	}
	return result == "OK", nil
}
