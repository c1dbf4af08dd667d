package session

import (
	"context"
	"sync"

	"github.com/nfrund/unisocial/internal/domain"
)

// CachedStore keeps the last loaded user in memory in front of another
// Storage. The web server pairs it with Watch so that a login from the CLI
// is picked up without re-reading the file on every request.
type CachedStore struct {
	inner Storage

	mu     sync.Mutex
	loaded bool
	user   *domain.User
}

// NewCachedStore wraps inner.
func NewCachedStore(inner Storage) *CachedStore {
	return &CachedStore{inner: inner}
}

func (s *CachedStore) Load(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.user.Clone(), nil
	}
	user, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.user, s.loaded = user, true
	return user.Clone(), nil
}

func (s *CachedStore) Save(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.Save(ctx, user); err != nil {
		s.loaded = false
		return err
	}
	s.user, s.loaded = user.Clone(), true
	return nil
}

func (s *CachedStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.user = nil
	return s.inner.Clear(ctx)
}

// Invalidate forgets the cached user; the next Load reads through.
func (s *CachedStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.user = nil
}
