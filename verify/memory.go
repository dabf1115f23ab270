package verify

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process TTL store, used when no Redis address is
// configured. Entries do not survive a restart.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns a store whose entries expire after the standard TTL.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: gocache.New(TTL, TTL)}
}

// Put stores a pending signup.
func (s *MemoryStore) Put(_ context.Context, email string, pending PendingSignup) error {
	s.cache.Set(email, pending, gocache.DefaultExpiration)
	return nil
}

// Get retrieves a pending signup if present and unexpired.
func (s *MemoryStore) Get(_ context.Context, email string) (PendingSignup, bool, error) {
	v, ok := s.cache.Get(email)
	if !ok {
		return PendingSignup{}, false, nil
	}
	return v.(PendingSignup), true, nil
}

// Delete removes a pending signup.
func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.cache.Delete(email)
	return nil
}
