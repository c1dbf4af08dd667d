// Package auth holds the session user: it restores it from storage, signs
// users in and out, and reports which top-level section the UI should show.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/session"
	"github.com/nfrund/unisocial/internal/view"
)

// API is the part of the API client the auth manager uses.
type API interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (string, error)
}

// Manager tracks the session user. It is safe for concurrent use.
type Manager struct {
	api      API
	store    session.Storage
	notifier notify.Notifier
	domain   string
	univ     string
	logger   *slog.Logger

	mu   sync.RWMutex
	user *domain.User
	tab  view.Tab
}

// NewManager creates an auth manager. The institutional domain and the fixed
// university name come from cfg.
func NewManager(api API, store session.Storage, n notify.Notifier, cfg config.Provider) *Manager {
	if n == nil {
		n = notify.Discard
	}
	return &Manager{
		api:      api,
		store:    store,
		notifier: n,
		domain:   cfg.GetInstitutionalDomain(),
		univ:     cfg.GetUniversityName(),
		logger:   slog.Default().With("component", "auth"),
		tab:      view.TabLogin,
	}
}

// Init restores the session user from storage. A corrupted entry leaves the
// manager anonymous and is not an error.
func (m *Manager) Init(ctx context.Context) error {
	user, err := m.store.Load(ctx)
	if errors.Is(err, session.ErrCorrupt) {
		user, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	if user != nil {
		m.logger.Debug("Session restored", "user_id", user.ID)
	}
	return nil
}

// Login validates the form and authenticates. Every failure is reported as a
// toast and leaves the current state unchanged.
func (m *Manager) Login(ctx context.Context, form domain.LoginForm) error {
	if err := form.Validate(ctx, m.domain); err != nil {
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	user, err := m.api.Login(ctx, form.Credentials())
	if err != nil {
		m.logger.Warn("Login failed", "error", err)
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	if err := m.store.Save(ctx, user); err != nil {
		m.logger.Error("Failed to persist session", "error", err)
		m.notifier.Notify(ctx, notify.Error("Error al guardar la sesión"))
		return err
	}

	m.mu.Lock()
	m.user = user
	m.tab = view.TabLogin
	m.mu.Unlock()

	m.logger.Info("User logged in", "user_id", user.ID)
	m.notifier.Notify(ctx, notify.Success("¡Bienvenido de vuelta!"))
	return nil
}

// Register validates the form and creates the account. Registration does not
// sign the user in; on success the login tab becomes active.
func (m *Manager) Register(ctx context.Context, form domain.RegisterForm) error {
	if err := form.Validate(ctx, m.domain); err != nil {
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	id, err := m.api.Register(ctx, form.Registration(m.univ))
	if err != nil {
		m.logger.Warn("Registration failed", "error", err)
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	m.SwitchTab(view.TabLogin)
	m.logger.Info("Account created", "user_id", id)
	m.notifier.Notify(ctx, notify.Success(
		"¡Cuenta creada exitosamente! Te mostraremos contenido sobre: "+interestNames(form.Interests),
	))
	return nil
}

// Logout clears the session user.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("Failed to clear session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	m.notifier.Notify(ctx, notify.Success("Sesión cerrada correctamente"))
	return nil
}

// IsAuthenticated reports whether a session user is present.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// CurrentUser returns a copy of the session user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// CurrentUserID returns the session user's id, or "".
func (m *Manager) CurrentUserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return ""
	}
	return m.user.ID
}

// Tab returns the visible auth form.
func (m *Manager) Tab() view.Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tab
}

// SwitchTab changes the visible auth form. Unknown tabs are ignored.
func (m *Manager) SwitchTab(tab view.Tab) {
	if tab != view.TabLogin && tab != view.TabRegister {
		return
	}
	m.mu.Lock()
	m.tab = tab
	m.mu.Unlock()
}

// View returns the section visibility and identity of the session.
func (m *Manager) View() view.Session {
	return view.NewSession(m.CurrentUser(), m.Tab())
}

func interestNames(tags []string) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if c, ok := domain.LookupCategory(tag); ok {
			names = append(names, c.Name)
		} else {
			names = append(names, tag)
		}
	}
	return strings.Join(names, ", ")
}
