// Package users keeps the registered user list behind the online sidebar and
// the user/friend counters.
package users

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/view"
)

// MaxOnline is how many users the online list shows.
const MaxOnline = 5

// API is the part of the API client the users manager uses.
type API interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Session provides the current session user.
type Session interface {
	CurrentUser() *domain.User
}

// Manager holds the loaded user list.
type Manager struct {
	api     API
	session Session
	logger  *slog.Logger

	loading atomic.Bool

	mu    sync.RWMutex
	users []domain.User
}

// NewManager creates a users manager.
func NewManager(api API, sess Session) *Manager {
	return &Manager{
		api:     api,
		session: sess,
		logger:  slog.Default().With("component", "users"),
	}
}

// LoadUsers fetches the user list. Failures are logged and returned but not
// shown to the user; the previous list is kept. A call made while another
// load is in flight is dropped.
func (m *Manager) LoadUsers(ctx context.Context) error {
	if !m.loading.CompareAndSwap(false, true) {
		m.logger.Debug("Users load already in flight, dropping call")
		return nil
	}
	defer m.loading.Store(false)

	users, err := m.api.ListUsers(ctx)
	if err != nil {
		m.logger.Error("Error loading users", "error", err)
		return err
	}

	m.mu.Lock()
	m.users = users
	m.mu.Unlock()
	return nil
}

// Users returns a copy of the loaded list.
func (m *Manager) Users() []domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.users)
}

// Online returns the first MaxOnline users other than the session user.
func (m *Manager) Online() []domain.User {
	var selfID string
	if u := m.session.CurrentUser(); u != nil {
		selfID = u.ID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, 0, MaxOnline)
	for _, u := range m.users {
		if u.ID == selfID {
			continue
		}
		out = append(out, u)
		if len(out) == MaxOnline {
			break
		}
	}
	return out
}

// Total is the number of registered users.
func (m *Manager) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// FriendsCount is every user but the session user.
func (m *Manager) FriendsCount() int {
	return max(0, m.Total()-1)
}

// View renders the sidebar.
func (m *Manager) View() view.UsersPanel {
	return view.NewUsersPanel(m.Online(), m.Total(), m.FriendsCount())
}
