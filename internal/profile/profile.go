// Package profile loads and presents a user's aggregate profile.
package profile

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

// API is the part of the API client the profile manager uses.
type API interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// Session provides the current session user.
type Session interface {
	CurrentUser() *domain.User
}

// Manager holds the last loaded profile.
type Manager struct {
	api      API
	session  Session
	notifier notify.Notifier
	now      func() time.Time
	logger   *slog.Logger

	loading atomic.Bool

	mu      sync.RWMutex
	current *domain.Profile
}

// NewManager creates a profile manager. now defaults to time.Now.
func NewManager(api API, sess Session, n notify.Notifier, now func() time.Time) *Manager {
	if n == nil {
		n = notify.Discard
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		api:      api,
		session:  sess,
		notifier: n,
		now:      now,
		logger:   slog.Default().With("component", "profile"),
	}
}

// LoadUserProfile loads the profile of userID, or of the session user when
// userID is empty. A call made while another is in flight is dropped and
// reports false.
func (m *Manager) LoadUserProfile(ctx context.Context, userID string) (bool, error) {
	if !m.loading.CompareAndSwap(false, true) {
		m.logger.Debug("Profile load already in flight, dropping call")
		return false, nil
	}
	defer m.loading.Store(false)

	if userID == "" {
		if u := m.session.CurrentUser(); u != nil {
			userID = u.ID
		}
	}
	if userID == "" {
		m.notifier.Notify(ctx, notify.Classifyf("Error al cargar el perfil", domain.ErrNoUserID))
		return true, domain.ErrNoUserID
	}

	p, err := m.api.GetProfile(ctx, userID)
	if err != nil {
		m.logger.Error("Error loading profile", "user_id", userID, "error", err)
		m.notifier.Notify(ctx, notify.Classifyf("Error al cargar el perfil", err))
		return true, err
	}

	m.mu.Lock()
	m.current = p
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Success("Perfil cargado exitosamente"))
	return true, nil
}

// Show loads the session user's profile. It warns and does nothing when
// nobody is signed in.
func (m *Manager) Show(ctx context.Context) error {
	if m.session.CurrentUser() == nil {
		m.notifier.Notify(ctx, notify.Warning("Debes iniciar sesión para ver el perfil"))
		return domain.ErrNotAuthenticated
	}
	_, err := m.LoadUserProfile(ctx, "")
	return err
}

// Current returns the last loaded profile, or nil.
func (m *Manager) Current() *domain.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// View renders the last loaded profile.
func (m *Manager) View() view.Profile {
	return view.NewProfile(m.Current(), m.now())
}
