package posts_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/posts"
)

var base = time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)

type fakeAPI struct {
	mu          sync.Mutex
	posts       []domain.Post
	listErr     error
	listFor     []string
	created     []domain.NewPost
	likeReplies []domain.LikeState
	likeErr     error
	block       chan struct{}
	started     chan struct{}
}

func (f *fakeAPI) ListPosts(ctx context.Context, personalizedFor string) ([]domain.Post, error) {
	f.mu.Lock()
	f.listFor = append(f.listFor, personalizedFor)
	block, started := f.block, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakeAPI) CreatePost(ctx context.Context, p domain.NewPost) (string, error) {
	f.created = append(f.created, p)
	return "p-new", nil
}

func (f *fakeAPI) ToggleLike(ctx context.Context, postID, userID string) (domain.LikeState, error) {
	if f.likeErr != nil {
		return domain.LikeState{}, f.likeErr
	}
	reply := f.likeReplies[0]
	f.likeReplies = f.likeReplies[1:]
	reply.PostID = postID
	return reply, nil
}

type fakeSession struct{ user *domain.User }

func (s fakeSession) CurrentUser() *domain.User { return s.user }

var ana = &domain.User{ID: "u1", Name: "Ana", Interests: []string{"social"}}

func post(id string, likes int, age time.Duration) domain.Post {
	return domain.Post{ID: id, Likes: likes, CreatedAt: domain.NewTimestamp(base.Add(-age))}
}

func newManager(api *fakeAPI, user *domain.User) (*posts.Manager, *notify.Recorder) {
	rec := notify.NewRecorder()
	m := posts.NewManager(api, fakeSession{user: user}, rec, "http://localhost:8080",
		posts.WithClock(func() time.Time { return base }))
	return m, rec
}

func ids(ps []domain.Post) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestSort_Popular(t *testing.T) {
	in := []domain.Post{
		post("old-1", 1, 3*time.Hour),
		post("new-0", 0, time.Minute),
		post("new-1", 1, time.Hour),
		post("top", 5, 48*time.Hour),
		post("old-0", 0, 24*time.Hour),
	}
	posts.Sort(in, posts.SortPopular)

	want := []string{"top", "new-1", "old-1", "new-0", "old-0"}
	if diff := cmp.Diff(want, ids(in)); diff != "" {
		t.Errorf("popular order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_PopularProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	in := make([]domain.Post, 200)
	for i := range in {
		in[i] = post(string(rune('A'+i%26))+string(rune('a'+i/26)), r.IntN(5), time.Duration(r.IntN(1000))*time.Minute)
	}
	posts.Sort(in, posts.SortPopular)

	for i := 1; i < len(in); i++ {
		prev, cur := in[i-1], in[i]
		require.GreaterOrEqual(t, prev.Likes, cur.Likes, "likes must be non-increasing at %d", i)
		if prev.Likes == cur.Likes {
			require.False(t, prev.CreatedAt.Before(cur.CreatedAt.Time), "ties must be newest first at %d", i)
		}
	}
}

func TestSort_Recent(t *testing.T) {
	in := []domain.Post{post("b", 9, time.Hour), post("a", 0, time.Minute), post("c", 3, 2*time.Hour)}
	posts.Sort(in, posts.SortRecent)
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(in)); diff != "" {
		t.Errorf("recent order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPosts(t *testing.T) {
	ctx := context.Background()

	t.Run("personalized only with interests", func(t *testing.T) {
		api := &fakeAPI{}
		m, _ := newManager(api, ana)
		_, err := m.LoadPosts(ctx, true)
		require.NoError(t, err)
		assert.True(t, m.Personalized())

		noInterests, _ := newManager(api, &domain.User{ID: "u2"})
		_, err = noInterests.LoadPosts(ctx, true)
		require.NoError(t, err)
		assert.False(t, noInterests.Personalized())

		anon, _ := newManager(api, nil)
		_, err = anon.LoadPosts(ctx, true)
		require.NoError(t, err)

		_, err = m.LoadPosts(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "", "", ""}, api.listFor)
		assert.Equal(t, "Publicaciones Recientes", m.View().Heading)
	})

	t.Run("normalizes and resets sort", func(t *testing.T) {
		api := &fakeAPI{posts: []domain.Post{
			{ID: "p1", Likes: 7, LikedBy: []string{"a"}},
			{ID: "p2"},
		}}
		m, _ := newManager(api, ana)
		m.SetSortType(posts.SortRecent)

		_, err := m.LoadPosts(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, posts.SortPopular, m.SortType())
		p1, ok := m.Post("p1")
		require.True(t, ok)
		assert.Equal(t, 1, p1.Likes)
		assert.Equal(t, 2, m.Total())
	})

	t.Run("failure is toasted and keeps previous posts", func(t *testing.T) {
		api := &fakeAPI{posts: []domain.Post{{ID: "p1"}}}
		m, rec := newManager(api, ana)
		_, err := m.LoadPosts(ctx, false)
		require.NoError(t, err)

		api.listErr = apiclient.ErrTransport
		_, err = m.LoadPosts(ctx, false)
		require.Error(t, err)
		assert.Equal(t, 1, m.Total())
		last, _ := rec.Last()
		assert.Equal(t, notify.Error(notify.MsgConnection), last)
	})
}

func TestLoadPosts_OverlappingCallIsDropped(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), started: make(chan struct{}, 1)}
	m, _ := newManager(api, ana)

	done := make(chan bool)
	go func() {
		ran, _ := m.LoadPosts(context.Background(), false)
		done <- ran
	}()
	<-api.started
	assert.True(t, m.Loading())

	ran, err := m.LoadPosts(context.Background(), false)
	assert.NoError(t, err)
	assert.False(t, ran)

	close(api.block)
	assert.True(t, <-done)
	assert.False(t, m.Loading())
	assert.Len(t, api.listFor, 1)
}

func TestSetSortType(t *testing.T) {
	api := &fakeAPI{posts: []domain.Post{post("liked", 3, 2*time.Hour), post("fresh", 0, time.Minute)}}
	m, _ := newManager(api, ana)
	_, err := m.LoadPosts(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"liked", "fresh"}, ids(m.Sorted()))
	m.SetSortType(posts.SortRecent)
	assert.Equal(t, []string{"fresh", "liked"}, ids(m.Sorted()))
	m.SetSortType("weird")
	assert.Equal(t, posts.SortPopular, m.SortType())
	assert.Len(t, api.listFor, 1, "sorting never fetches")
	assert.Equal(t, []string{"liked", "fresh"}, ids(m.Posts()))
}

func TestToggleLike_TwoToggles(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		posts:       []domain.Post{{ID: "p1", Likes: 0}},
		likeReplies: []domain.LikeState{{Likes: 1, Liked: true}, {Likes: 0, Liked: false}},
	}
	m, rec := newManager(api, ana)
	_, err := m.LoadPosts(ctx, false)
	require.NoError(t, err)

	_, err = m.ToggleLike(ctx, "p1")
	require.NoError(t, err)
	p, _ := m.Post("p1")
	assert.Equal(t, 1, p.Likes)
	assert.True(t, p.Liked)

	_, err = m.ToggleLike(ctx, "p1")
	require.NoError(t, err)
	p, _ = m.Post("p1")
	assert.Equal(t, 0, p.Likes)
	assert.False(t, p.Liked)

	assert.Equal(t, []notify.Toast{
		notify.Success("¡Te gusta esta publicación! (1 like)"),
		notify.Info("Like removido (0 likes)"),
	}, rec.Toasts())
}

func TestToggleLike_Failures(t *testing.T) {
	ctx := context.Background()

	anon, rec := newManager(&fakeAPI{}, nil)
	_, err := anon.ToggleLike(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	last, _ := rec.Last()
	assert.Equal(t, notify.KindError, last.Kind)

	api := &fakeAPI{posts: []domain.Post{{ID: "p1", Likes: 4, Liked: true}}}
	m, _ := newManager(api, ana)
	_, err = m.LoadPosts(ctx, false)
	require.NoError(t, err)

	api.likeErr = &apiclient.HTTPError{Status: 500}
	_, err = m.ToggleLike(ctx, "p1")
	require.Error(t, err)
	p, _ := m.Post("p1")
	assert.Equal(t, 4, p.Likes)
	assert.True(t, p.Liked)
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a session user", func(t *testing.T) {
		api := &fakeAPI{}
		m, rec := newManager(api, nil)
		err := m.CreatePost(ctx, domain.PostForm{Content: "hola"})
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
		assert.Empty(t, api.created)
		last, _ := rec.Last()
		assert.Equal(t, notify.Error("Debes estar logueado para publicar"), last)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		api := &fakeAPI{}
		m, rec := newManager(api, ana)
		err := m.CreatePost(ctx, domain.PostForm{Content: "   "})
		assert.True(t, domain.IsValidation(err))
		assert.Empty(t, api.created)
		last, _ := rec.Last()
		assert.Equal(t, notify.Warning("El contenido no puede estar vacío"), last)
	})

	t.Run("publishes and reloads personalized", func(t *testing.T) {
		api := &fakeAPI{}
		m, rec := newManager(api, ana)
		require.NoError(t, m.CreatePost(ctx, domain.PostForm{Title: " ", Content: " hola ", Category: "eventos"}))

		require.Len(t, api.created, 1)
		assert.Equal(t, domain.NewPost{AuthorID: "u1", Content: "hola", Category: "eventos"}, api.created[0])
		assert.Equal(t, []string{"u1"}, api.listFor)
		assert.Equal(t, "¡Publicación creada exitosamente!", rec.Toasts()[0].Message)
	})
}

func TestShareReportAndCounters(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{posts: []domain.Post{
		{ID: "p1", Author: &domain.Author{ID: "u1"}},
		{ID: "p2", Author: &domain.Author{ID: "u2"}},
		{ID: "p3", Author: &domain.Author{ID: "u1"}},
	}}
	m, rec := newManager(api, ana)
	_, err := m.LoadPosts(ctx, false)
	require.NoError(t, err)

	link, err := m.ShareLink(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080#post-p2", link)

	m.Report(ctx, "p2")
	last, _ := rec.Last()
	assert.Equal(t, notify.Success("Reporte enviado. Revisaremos el contenido."), last)

	assert.Equal(t, 3, m.Total())
	assert.Equal(t, 2, m.CountByAuthor("u1"))
	assert.Zero(t, m.CountByAuthor(""))
	assert.Equal(t, 2, m.View().Mine)

	card, err := m.Card("p1")
	require.NoError(t, err)
	assert.True(t, card.CanLike)
	_, err = m.Card("missing")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}
