package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/unisocial/internal/app"
	"github.com/nfrund/unisocial/internal/auth"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/posts"
	"github.com/nfrund/unisocial/internal/profile"
	"github.com/nfrund/unisocial/internal/session"
	"github.com/nfrund/unisocial/internal/users"
	"github.com/nfrund/unisocial/internal/view"
)

// fakeAPI serves every manager.
type fakeAPI struct {
	healthy    atomic.Int32 // probes left to fail before reporting healthy; -1 never
	probes     atomic.Int32
	postsErr   error
	usersErr   error
	postLoads  atomic.Int32
	userLoads  atomic.Int32
	profileIDs []string
}

func (f *fakeAPI) Health(ctx context.Context) (bool, error) {
	f.probes.Add(1)
	left := f.healthy.Load()
	if left < 0 {
		return false, errors.New("connection refused")
	}
	if left > 0 {
		f.healthy.Add(-1)
		return false, nil
	}
	return true, nil
}

func (f *fakeAPI) Login(ctx context.Context, c domain.Credentials) (*domain.User, error) {
	return &domain.User{ID: "u1", Name: "Ana", Interests: []string{"social"}}, nil
}

func (f *fakeAPI) Register(ctx context.Context, r domain.Registration) (string, error) {
	return "u1", nil
}

func (f *fakeAPI) ListPosts(ctx context.Context, personalizedFor string) ([]domain.Post, error) {
	f.postLoads.Add(1)
	return []domain.Post{{ID: "p1"}}, f.postsErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, p domain.NewPost) (string, error) {
	return "p2", nil
}

func (f *fakeAPI) ToggleLike(ctx context.Context, postID, userID string) (domain.LikeState, error) {
	return domain.LikeState{PostID: postID, Likes: 1, Liked: true}, nil
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.userLoads.Add(1)
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return []domain.User{{ID: "u1"}, {ID: "u2"}}, nil
}

func (f *fakeAPI) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	f.profileIDs = append(f.profileIDs, userID)
	return &domain.Profile{User: domain.User{ID: userID}}, nil
}

type harness struct {
	app   *app.App
	api   *fakeAPI
	auth  *auth.Manager
	posts *posts.Manager
	users *users.Manager
	rec   *notify.Recorder
	store *session.Store
	waits []time.Duration
}

func newHarness(t *testing.T, origin string) *harness {
	t.Helper()
	cfg := &config.Config{AppOrigin: origin, InstitutionalDomain: "ucc.edu.co"}
	api := &fakeAPI{}
	rec := notify.NewRecorder()
	store := session.NewMemoryStore()

	h := &harness{api: api, rec: rec, store: store}
	h.auth = auth.NewManager(api, store, rec, cfg)
	h.posts = posts.NewManager(api, h.auth, rec, origin)
	h.users = users.NewManager(api, h.auth)
	h.app = app.New(app.Dependencies{
		Config:   cfg,
		Health:   api,
		Auth:     h.auth,
		Posts:    h.posts,
		Users:    h.users,
		Profile:  profile.NewManager(api, h.auth, rec, nil),
		Notifier: rec,
	}, app.WithWait(func(ctx context.Context, d time.Duration) error {
		h.waits = append(h.waits, d)
		return nil
	}))
	return h
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, h.store.Save(context.Background(), &domain.User{ID: "u1", Name: "Ana", Interests: []string{"social"}}))
}

func TestInit_FatalAfterThreeRetries(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	h.api.healthy.Store(-1)

	err := h.app.Init(context.Background())

	var fatal *app.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}, h.waits)
	assert.Equal(t, int32(4), h.api.probes.Load())
	assert.Equal(t, "Error de Conexión", fatal.View.Title)
	assert.Contains(t, fatal.View.Message, "http://localhost:5000")
	assert.Equal(t, "Reintentar", fatal.View.RetryLabel)
}

func TestInit_ProductionOverlay(t *testing.T) {
	h := newHarness(t, "https://unisocial.example")
	h.api.healthy.Store(-1)

	var fatal *app.FatalError
	require.ErrorAs(t, h.app.Init(context.Background()), &fatal)
	assert.Equal(t, "No se puede conectar con el servidor. Por favor, inténtalo más tarde.", fatal.View.Message)
	assert.Contains(t, fatal.View.Help[3], "https://unisocial.example/api")
}

func TestInit_RecoversAfterRetries(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	h.api.healthy.Store(2)
	h.signIn(t)

	require.NoError(t, h.app.Init(context.Background()))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, h.waits)
	assert.True(t, h.auth.IsAuthenticated())
	assert.Equal(t, int32(1), h.api.postLoads.Load())
	assert.Equal(t, int32(1), h.api.userLoads.Load())
	assert.Equal(t, view.SectionDashboard, h.app.Section())
}

func TestInit_AnonymousSkipsDashboard(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	require.NoError(t, h.app.Init(context.Background()))
	assert.Zero(t, h.api.postLoads.Load())
	assert.Equal(t, view.SectionAuth, h.app.Section())
}

func TestInit_CanceledWait(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	h.api.healthy.Store(-1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := app.New(h.app.Deps())
	assert.ErrorIs(t, a.Init(ctx), context.Canceled)
}

func TestLoadDashboard_ToleratesFailures(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	h.signIn(t)
	require.NoError(t, h.auth.Init(context.Background()))
	h.api.usersErr = errors.New("users down")

	err := h.app.LoadDashboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, h.posts.Total(), "posts load unaffected by users failure")

	d := h.app.Dashboard()
	assert.Equal(t, "Ana", d.Session.Name)
	assert.Len(t, d.Feed.Cards, 1)
}

func TestRefresh(t *testing.T) {
	h := newHarness(t, "http://localhost:8080")
	h.app.Refresh(context.Background())
	assert.Empty(t, h.rec.Toasts())

	h.signIn(t)
	require.NoError(t, h.auth.Init(context.Background()))
	h.app.Refresh(context.Background())
	last, _ := h.rec.Last()
	assert.Equal(t, notify.Success("Datos actualizados"), last)
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		h := newHarness(t, "http://localhost:8080")

		assert.Equal(t, view.SectionAuth, h.app.Navigate(ctx, "#profile"))
		last, _ := h.rec.Last()
		assert.Equal(t, notify.Warning("Debes estar logueado para ver tu perfil"), last)

		assert.Equal(t, view.SectionDashboard, h.app.Navigate(ctx, "home"))
		assert.Zero(t, h.api.postLoads.Load())
	})

	t.Run("signed in", func(t *testing.T) {
		h := newHarness(t, "http://localhost:8080")
		h.signIn(t)
		require.NoError(t, h.auth.Init(ctx))

		assert.Equal(t, view.SectionDashboard, h.app.Navigate(ctx, "#home"))
		assert.Equal(t, int32(1), h.api.postLoads.Load())

		assert.Equal(t, view.SectionProfile, h.app.Navigate(ctx, "#profile"))
		assert.Equal(t, []string{"u1"}, h.api.profileIDs)

		assert.Equal(t, view.SectionDashboard, h.app.Navigate(ctx, "#friends"))
		last, _ := h.rec.Last()
		assert.Equal(t, notify.Info(`Sección "Amigos" próximamente`), last)

		assert.Equal(t, view.SectionDashboard, h.app.Navigate(ctx, "#nowhere"))
	})
}

func TestNewContainer_ResolvesApp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	cfg := &config.Config{APIBaseURL: srv.URL, AppOrigin: "http://localhost:8080", APITimeout: time.Second}
	injector := app.NewContainer(cfg, app.ContainerOptions{Storage: session.NewMemoryStore()})
	defer injector.Shutdown()

	a := do.MustInvoke[*app.App](injector)
	require.NoError(t, a.Init(context.Background()))
	assert.Equal(t, view.SectionAuth, a.Section())
	assert.Same(t, do.MustInvoke[*auth.Manager](injector), a.Deps().Auth)
}

func TestAssemble_SharesOneSession(t *testing.T) {
	cfg := &config.Config{AppOrigin: "http://localhost:8080", InstitutionalDomain: "ucc.edu.co"}
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &domain.User{ID: "u1", Name: "Ana"}))
	rec := notify.NewRecorder()

	deps := app.Assemble(&fakeAPI{}, store, rec, cfg, nil)
	require.NoError(t, deps.Auth.Init(context.Background()))

	_, err := deps.Posts.ToggleLike(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "u1", deps.Auth.CurrentUserID())
	assert.NotEmpty(t, rec.Toasts())
	assert.Equal(t, view.SectionDashboard, app.New(deps).Section())
}
