package users_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/users"
)

type fakeAPI struct {
	users   []domain.User
	err     error
	calls   atomic.Int32
	block   chan struct{}
	started chan struct{}
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.users, f.err
}

type fakeSession struct{ user *domain.User }

func (s fakeSession) CurrentUser() *domain.User { return s.user }

func someUsers(n int) []domain.User {
	out := make([]domain.User, n)
	for i := range out {
		out[i] = domain.User{ID: fmt.Sprintf("u%d", i), Name: fmt.Sprintf("User %d", i)}
	}
	return out
}

func TestOnline_ExcludesSelfAndCaps(t *testing.T) {
	api := &fakeAPI{users: someUsers(8)}
	m := users.NewManager(api, fakeSession{&domain.User{ID: "u1"}})
	require.NoError(t, m.LoadUsers(context.Background()))

	online := m.Online()
	require.Len(t, online, users.MaxOnline)
	for _, u := range online {
		assert.NotEqual(t, "u1", u.ID)
	}
	assert.Equal(t, "u0", online[0].ID)
	assert.Equal(t, "u2", online[1].ID)
	assert.Equal(t, 8, m.Total())
	assert.Equal(t, 7, m.FriendsCount())
}

func TestCounters_Empty(t *testing.T) {
	m := users.NewManager(&fakeAPI{}, fakeSession{})
	assert.Zero(t, m.Total())
	assert.Zero(t, m.FriendsCount())
	assert.Equal(t, "No hay usuarios en línea", m.View().Empty)
}

func TestLoadUsers_FailureKeepsList(t *testing.T) {
	api := &fakeAPI{users: someUsers(2)}
	m := users.NewManager(api, fakeSession{})
	require.NoError(t, m.LoadUsers(context.Background()))

	api.err = errors.New("boom")
	assert.Error(t, m.LoadUsers(context.Background()))
	assert.Len(t, m.Users(), 2)

	panel := m.View()
	require.Len(t, panel.Online, 2)
	assert.Equal(t, "Estudiante", panel.Online[0].Career)
}

func TestLoadUsers_DropsOverlappingCall(t *testing.T) {
	api := &fakeAPI{users: someUsers(3), block: make(chan struct{}), started: make(chan struct{})}
	m := users.NewManager(api, fakeSession{})

	done := make(chan error)
	go func() { done <- m.LoadUsers(context.Background()) }()
	<-api.started

	require.NoError(t, m.LoadUsers(context.Background()))
	assert.Empty(t, m.Users(), "dropped call leaves the list untouched")

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), api.calls.Load())
	assert.Len(t, m.Users(), 3)
}
