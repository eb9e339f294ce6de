package token

import (
	"context"
	"sync"
	"time"
)

// Blocklist is the revocation set for token identifiers (jti). A revoked
// identifier must be rejected even while the token itself is still
// cryptographically valid. Entries carry the source token's remaining
// lifetime so the set stays bounded.
type Blocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// Prune removes expired entries and reports how many were dropped.
	Prune(ctx context.Context) (int, error)
}

// MemoryBlocklist keeps revoked identifiers in a mutex-guarded map. It is
// the default backend when Redis is not configured; revocations do not
// survive a process restart, matching the lifetime of the tokens they block.
type MemoryBlocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> entry expiry
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{
		revoked: make(map[string]time.Time),
	}
}

func (b *MemoryBlocklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to block.
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (b *MemoryBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.revoked, jti)
		return false, nil
	}
	return true, nil
}

func (b *MemoryBlocklist) Prune(_ context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	pruned := 0
	for jti, expiry := range b.revoked {
		if now.After(expiry) {
			delete(b.revoked, jti)
			pruned++
		}
	}
	return pruned, nil
}

// Len reports the current number of entries.
func (b *MemoryBlocklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.revoked)
}
