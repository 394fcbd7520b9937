package memory

import (
	"context"
	"sync"
	"time"
)

// ReplayLedger implements ports.ReplayLedger with a mutex-guarded map.
// Suitable for single-process deployments and tests; the Redis ledger is
// the multi-instance backend.
type ReplayLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time // identity -> expiry (zero = never)
}

// NewReplayLedger creates an empty in-memory replay ledger.
func NewReplayLedger() *ReplayLedger {
	return &ReplayLedger{entries: make(map[string]time.Time)}
}

// CheckAndSet atomically records a proof identity. Returns true if the
// identity was new, false on replay. The check and the insert happen under
// one critical section, so concurrent calls with the same identity resolve
// to exactly one winner.
func (l *ReplayLedger) CheckAndSet(_ context.Context, identity string, ttl time.Duration) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.entries[identity]; ok {
		if expiry.IsZero() || now.Before(expiry) {
			return false, nil
		}
		// Entry expired, treat as absent.
	}

	if ttl > 0 {
		l.entries[identity] = now.Add(ttl)
	} else {
		l.entries[identity] = time.Time{}
	}
	return true, nil
}

// Len reports the number of live entries. Test helper.
func (l *ReplayLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
