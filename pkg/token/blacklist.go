package token

import (
	"context"
	"sync"
	"time"
)

// Revoker records revoked-but-unexpired access tokens. Logout writes here;
// the auth middleware consults it on every authenticated request.
type Revoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Blacklist is an in-process Revoker. Entries are keyed by the raw token
// string and carry the token's own expiry, so the map is bounded by the
// number of tokens revoked within one token lifetime window: a periodic
// sweep drops entries whose natural expiry has passed.
//
// When the service runs as multiple replicas this registry is per-instance
// only; use RedisBlacklist for a revocation view shared across replicas.
type Blacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time

	now  func() time.Time
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewBlacklist constructs a blacklist and starts its sweep loop. Callers own
// the instance and must call Stop when done; nothing here is package-global,
// so tests can run isolated registries side by side.
func NewBlacklist(sweepInterval time.Duration) *Blacklist {
	b := &Blacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	b.wg.Add(1)
	go b.sweepLoop(sweepInterval)
	return b
}

func (b *Blacklist) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	b.mu.Lock()
	b.entries[token] = expiresAt
	b.mu.Unlock()
	return nil
}

func (b *Blacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	expiresAt, ok := b.entries[token]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	// Entries past their natural expiry are useless: the codec already
	// rejects the token, so report not-revoked and let the sweep reclaim it.
	return b.now().Before(expiresAt), nil
}

// Sweep removes entries whose expiry has passed. Called on a timer and
// exported for tests.
func (b *Blacklist) Sweep() {
	now := b.now()
	b.mu.Lock()
	for token, expiresAt := range b.entries {
		if !expiresAt.After(now) {
			delete(b.entries, token)
		}
	}
	b.mu.Unlock()
}

// Len reports the number of tracked entries, swept or not.
func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Stop terminates the sweep loop. Safe to call once.
func (b *Blacklist) Stop() {
	close(b.stop)
	b.wg.Wait()
}

func (b *Blacklist) sweepLoop(interval time.Duration) {
	defer b.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.Sweep()
		case <-b.stop:
			return
		}
	}
}
