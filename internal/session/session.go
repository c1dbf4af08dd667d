// Package session persists the session user behind a small key/value port so
// the same code runs against memory, a file on disk or a browser cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/unisocial/internal/domain"
)

// Key is the fixed name under which the session user is stored.
const Key = "unisocial_user"

// ErrCorrupt reports a stored entry that could not be decoded. The entry has
// already been removed when it is returned.
var ErrCorrupt = errors.New("corrupted session entry")

// Backend is the storage port: a tiny string-keyed byte store.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Storage is what the auth layer needs from session persistence.
type Storage interface {
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Clear(ctx context.Context) error
}

// Store encodes the session user as JSON on top of a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a Store over the given backend.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "session"),
	}
}

// Load returns the stored user, or nil when there is none. A corrupted entry
// is removed and reported as ErrCorrupt.
func (s *Store) Load(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.backend.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var user *domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn("Error loading user from storage", "error", err)
		if rmErr := s.backend.Remove(Key); rmErr != nil {
			s.logger.Error("Failed to remove corrupted session", "error", rmErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return user, nil
}

// Save persists the user.
func (s *Store) Save(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.backend.Set(Key, raw); err != nil {
		return fmt.Errorf("Error al guardar la sesión: %w", err)
	}
	return nil
}

// Clear removes the stored user.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Remove(Key)
}

// MemoryBackend keeps entries in a map. It is the deterministic backend used
// by tests and by one-shot tools that must not touch disk.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// NewMemoryStore is shorthand for a Store over a fresh MemoryBackend.
func NewMemoryStore() *Store {
	return New(NewMemoryBackend())
}
