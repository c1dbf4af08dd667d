// Package posts manages the feed: loading (optionally personalized), client
// side sorting, publishing and like toggling.
package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/format"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

// SortType selects the client-side ordering of the feed.
type SortType string

const (
	SortPopular SortType = "popular"
	SortRecent  SortType = "recent"
)

// ParseSortType maps unknown values to SortPopular.
func ParseSortType(s string) SortType {
	if SortType(s) == SortRecent {
		return SortRecent
	}
	return SortPopular
}

// API is the part of the API client the posts manager uses.
type API interface {
	ListPosts(ctx context.Context, personalizedFor string) ([]domain.Post, error)
	CreatePost(ctx context.Context, post domain.NewPost) (string, error)
	ToggleLike(ctx context.Context, postID, userID string) (domain.LikeState, error)
}

// Session provides the current session user.
type Session interface {
	CurrentUser() *domain.User
}

// Manager holds the loaded feed. It is safe for concurrent use.
type Manager struct {
	api      API
	session  Session
	notifier notify.Notifier
	origin   string
	now      func() time.Time
	logger   *slog.Logger

	loading atomic.Bool

	mu           sync.RWMutex
	posts        []domain.Post
	sortType     SortType
	personalized bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a posts manager. origin is the public origin used to
// build share links.
func NewManager(api API, sess Session, n notify.Notifier, origin string, opts ...Option) *Manager {
	if n == nil {
		n = notify.Discard
	}
	m := &Manager{
		api:      api,
		session:  sess,
		notifier: n,
		origin:   origin,
		now:      time.Now,
		logger:   slog.Default().With("component", "posts"),
		sortType: SortPopular,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadPosts fetches the feed. The personalized endpoint is used only when
// asked for and the session user has at least one interest. A call made while
// another load is in flight is dropped and reports false.
func (m *Manager) LoadPosts(ctx context.Context, personalized bool) (bool, error) {
	if !m.loading.CompareAndSwap(false, true) {
		m.logger.Debug("Load already in flight, dropping call")
		return false, nil
	}
	defer m.loading.Store(false)

	var personalizedFor string
	if user := m.session.CurrentUser(); personalized && user.HasInterests() {
		personalizedFor = user.ID
	}

	posts, err := m.api.ListPosts(ctx, personalizedFor)
	if err != nil {
		m.logger.Error("Error loading posts", "error", err)
		m.notifier.Notify(ctx, notify.Classify(err))
		return true, err
	}

	for i := range posts {
		posts[i].Normalize()
	}

	m.mu.Lock()
	m.posts = posts
	m.sortType = SortPopular
	m.personalized = personalizedFor != ""
	m.mu.Unlock()

	m.logger.Debug("Posts loaded", "count", len(posts), "personalized", personalizedFor != "")
	return true, nil
}

// Loading reports whether a load is in flight.
func (m *Manager) Loading() bool {
	return m.loading.Load()
}

// SetSortType changes the ordering without fetching.
func (m *Manager) SetSortType(s SortType) {
	if s != SortRecent {
		s = SortPopular
	}
	m.mu.Lock()
	m.sortType = s
	m.mu.Unlock()
}

// SortType returns the active ordering.
func (m *Manager) SortType() SortType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortType
}

// Personalized reports whether the loaded feed came from the personalized
// endpoint.
func (m *Manager) Personalized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.personalized
}

// Posts returns a copy of the loaded posts in server order.
func (m *Manager) Posts() []domain.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.posts)
}

// Sorted returns a copy of the loaded posts in the active order.
func (m *Manager) Sorted() []domain.Post {
	m.mu.RLock()
	posts := slices.Clone(m.posts)
	s := m.sortType
	m.mu.RUnlock()

	Sort(posts, s)
	return posts
}

// Sort orders posts in place. Popular is likes descending with ties newest
// first; recent is newest first. The sort is stable.
func Sort(posts []domain.Post, s SortType) {
	newestFirst := func(a, b domain.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	}
	if s == SortRecent {
		slices.SortStableFunc(posts, newestFirst)
		return
	}
	slices.SortStableFunc(posts, func(a, b domain.Post) int {
		if a.Likes != b.Likes {
			return b.Likes - a.Likes
		}
		return newestFirst(a, b)
	})
}

// Post returns a loaded post by id.
func (m *Manager) Post(id string) (domain.Post, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.posts {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}

// Total is the number of loaded posts.
func (m *Manager) Total() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts)
}

// CountByAuthor counts loaded posts written by userID.
func (m *Manager) CountByAuthor(userID string) int {
	if userID == "" {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, p := range m.posts {
		if p.Author != nil && p.Author.ID == userID {
			n++
		}
	}
	return n
}

// CreatePost publishes a post as the session user and reloads the feed.
func (m *Manager) CreatePost(ctx context.Context, form domain.PostForm) error {
	user := m.session.CurrentUser()
	if user == nil {
		m.notifier.Notify(ctx, notify.Error("Debes estar logueado para publicar"))
		return domain.ErrNotAuthenticated
	}
	if err := form.Validate(ctx); err != nil {
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	id, err := m.api.CreatePost(ctx, form.NewPost(user.ID))
	if err != nil {
		m.logger.Error("Error creating post", "error", err)
		m.notifier.Notify(ctx, notify.Classify(err))
		return err
	}

	m.logger.Info("Post created", "post_id", id, "user_id", user.ID)
	m.notifier.Notify(ctx, notify.Success("¡Publicación creada exitosamente!"))
	if _, err := m.LoadPosts(ctx, true); err != nil {
		return fmt.Errorf("reload after create: %w", err)
	}
	return nil
}

// ToggleLike flips the session user's like on a post. The loaded post takes
// the server's reply as is; on failure it is left untouched.
func (m *Manager) ToggleLike(ctx context.Context, postID string) (domain.LikeState, error) {
	user := m.session.CurrentUser()
	if user == nil {
		m.notifier.Notify(ctx, notify.Error("Debes estar logueado para dar me gusta"))
		return domain.LikeState{}, domain.ErrNotAuthenticated
	}

	state, err := m.api.ToggleLike(ctx, postID, user.ID)
	if err != nil {
		m.logger.Error("Error toggling like", "post_id", postID, "error", err)
		m.notifier.Notify(ctx, notify.Classify(err))
		return domain.LikeState{}, err
	}

	m.mu.Lock()
	found := false
	for i := range m.posts {
		if m.posts[i].ID == postID {
			m.posts[i].Likes = state.Likes
			m.posts[i].Liked = state.Liked
			m.posts[i].LikedBy = nil
			found = true
			break
		}
	}
	m.mu.Unlock()
	if !found {
		m.logger.Debug("Liked post is not loaded", "post_id", postID)
	}

	count := fmt.Sprintf("(%d %s)", state.Likes, format.LikesWord(state.Likes))
	if state.Liked {
		m.notifier.Notify(ctx, notify.Success("¡Te gusta esta publicación! "+count))
	} else {
		m.notifier.Notify(ctx, notify.Info("Like removido "+count))
	}
	return state, nil
}

// ShareLink returns the public link to a post.
func (m *Manager) ShareLink(ctx context.Context, postID string) (string, error) {
	if postID == "" {
		m.notifier.Notify(ctx, notify.Error("No se pudo copiar el enlace"))
		return "", errors.New("empty post id")
	}
	link := fmt.Sprintf("%s#post-%s", m.origin, postID)
	m.notifier.Notify(ctx, notify.Success("¡Enlace copiado al portapapeles!"))
	return link, nil
}

// Report acknowledges a report. Nothing is sent to the server.
func (m *Manager) Report(ctx context.Context, postID string) {
	m.logger.Info("Post reported", "post_id", postID)
	m.notifier.Notify(ctx, notify.Success("Reporte enviado. Revisaremos el contenido."))
}

// Card returns the card view of a loaded post.
func (m *Manager) Card(postID string) (view.PostCard, error) {
	p, ok := m.Post(postID)
	if !ok {
		return view.PostCard{}, domain.ErrPostNotFound
	}
	return view.NewPostCard(p, m.now(), m.session.CurrentUser() != nil), nil
}

// View returns the feed view in the active order.
func (m *Manager) View() view.Feed {
	user := m.session.CurrentUser()
	var mine int
	if user != nil {
		mine = m.CountByAuthor(user.ID)
	}
	return view.NewFeed(m.Sorted(), string(m.SortType()), m.Personalized(), mine, m.now(), user != nil)
}
