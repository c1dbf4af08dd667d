package view_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/view"
)

var now = time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)

func TestPostCard_LikesBadge(t *testing.T) {
	tests := []struct {
		likes     int
		badge     bool
		text      string
		anonLabel string
	}{
		{0, false, "", "0 likes"},
		{1, true, "1 persona", "1 like"},
		{2, true, "2 personas", "2 likes"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			post := domain.Post{ID: "p1", Content: "hola", Likes: tt.likes}

			card := view.NewPostCard(post, now, true)
			assert.Equal(t, tt.badge, card.HasLikesBadge())
			assert.Equal(t, tt.text, card.LikesText)
			assert.Equal(t, tt.badge, card.Popular)
			assert.Equal(t, "Me gusta", card.LikeLabel)

			anon := view.NewPostCard(post, now, false)
			assert.False(t, anon.CanLike)
			assert.Equal(t, tt.anonLabel, anon.LikeLabel)
			assert.NotEmpty(t, anon.LikeHint)
		})
	}
}

func TestPostCard_Content(t *testing.T) {
	post := domain.Post{
		ID:        "p1",
		Title:     "<b>Hola</b>",
		Content:   "ver https://ucc.edu.co",
		Category:  "desconocida",
		CreatedAt: domain.NewTimestamp(now.Add(-10 * time.Minute)),
	}
	card := view.NewPostCard(post, now, true)

	assert.Equal(t, "&lt;b&gt;Hola&lt;/b&gt;", card.TitleHTML)
	assert.Contains(t, card.ContentHTML, `<a href="https://ucc.edu.co"`)
	assert.Equal(t, domain.UnknownAuthorName, card.AuthorName)
	assert.Equal(t, "General", card.CategoryName)
	assert.Equal(t, "Hace 10 min", card.TimeAgo)
	assert.Equal(t, "post-p1", card.Anchor)
}

func TestFeed(t *testing.T) {
	empty := view.NewFeed(nil, "popular", false, 0, now, true)
	assert.True(t, empty.Empty)
	assert.Equal(t, "No hay publicaciones aún", empty.EmptyTitle)
	assert.Equal(t, view.HeadingAll, empty.Heading)

	feed := view.NewFeed([]domain.Post{{ID: "a"}, {ID: "b"}}, "recent", true, 1, now, true)
	assert.Equal(t, view.HeadingPersonalized, feed.Heading)
	require.Len(t, feed.Cards, 2)
	assert.Equal(t, "a", feed.Cards[0].ID)
	assert.Equal(t, 2, feed.Total)
	assert.Equal(t, 1, feed.Mine)
}

func TestSession(t *testing.T) {
	anon := view.NewSession(nil, "")
	assert.True(t, anon.ShowAuth)
	assert.False(t, anon.ShowDashboard)
	assert.False(t, anon.ShowHeader)
	assert.Equal(t, view.TabLogin, anon.ActiveTab)

	s := view.NewSession(&domain.User{ID: "u1", Name: "Ana"}, view.TabRegister)
	assert.True(t, s.ShowDashboard)
	assert.True(t, s.ShowHeader)
	assert.Equal(t, "Carrera no especificada", s.Career)
	assert.Equal(t, "Universidad no especificada", s.University)
	assert.Equal(t, "No hay intereses seleccionados", s.InterestsEmpty)

	withInterests := view.NewSession(&domain.User{ID: "u1", Interests: []string{"social", "robotica"}}, "")
	require.Len(t, withInterests.Interests, 2)
	assert.Equal(t, "👥 Social", withInterests.Interests[0].Label)
	assert.Equal(t, "robotica", withInterests.Interests[1].Label)
	assert.Empty(t, withInterests.InterestsEmpty)
}

func TestProfile_EmptyStates(t *testing.T) {
	p := view.NewProfile(&domain.Profile{User: domain.User{ID: "u1", Name: "Ana"}}, now)

	assert.Equal(t, "Sin carrera • Sin universidad", p.Identity.Subtitle)
	assert.Empty(t, p.Identity.Joined)
	assert.Equal(t, "No hay intereses definidos", p.Interests.Empty)
	assert.Equal(t, "Sin actividad suficiente", p.Favorite.Empty)
	assert.Equal(t, "No hay publicaciones aún", p.Recent.Empty)
	assert.Empty(t, p.Recent.Items)

	nilProfile := view.NewProfile(nil, now)
	assert.Equal(t, "No hay publicaciones aún", nilProfile.Recent.Empty)
}

func TestProfile_Populated(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'a'
	}
	posts := make([]domain.Post, 7)
	for i := range posts {
		posts[i] = domain.Post{ID: string(rune('a' + i)), Content: string(long), Likes: i}
	}
	posts[0].Content = "<i>hola</i>"
	posts[2].Content = strings.Repeat("&", 200)

	p := view.NewProfile(&domain.Profile{
		User: domain.User{
			Name:         "Ana",
			Career:       "Sistemas",
			University:   "UCC",
			Interests:    []string{"academico"},
			RegisteredAt: domain.NewTimestamp(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)),
		},
		Stats: domain.ProfileStats{
			TotalPosts:       7,
			TotalLikes:       21,
			FavoriteCategory: "academico",
			CategoryUsage:    map[string]int{"academico": 1, "social": 6},
		},
		RecentPosts: posts,
	}, now)

	assert.Equal(t, "Sistemas • UCC", p.Identity.Subtitle)
	assert.Equal(t, "Miembro desde marzo de 2024", p.Identity.Joined)
	assert.Equal(t, 2, p.Identity.CategoryCount)
	assert.Equal(t, "1 publicación", p.Favorite.CountText)
	assert.Equal(t, "📚 Académico", p.Favorite.Badge.Label)
	require.Len(t, p.Recent.Items, domain.MaxRecentPosts)
	assert.Equal(t, "&lt;i&gt;hola&lt;/i&gt;", p.Recent.Items[0].Content)
	assert.Len(t, []rune(p.Recent.Items[1].Content), 153)
	assert.Equal(t, strings.Repeat("&amp;", 150)+"...", p.Recent.Items[2].Content, "entities are never cut")
}

func TestUsersPanel(t *testing.T) {
	empty := view.NewUsersPanel(nil, 1, 0)
	assert.Equal(t, "No hay usuarios en línea", empty.Empty)

	panel := view.NewUsersPanel([]domain.User{{ID: "u2", Name: "Luis"}}, 2, 1)
	require.Len(t, panel.Online, 1)
	assert.Equal(t, "Estudiante", panel.Online[0].Career)
}

func TestFatalError(t *testing.T) {
	local := view.NewFatalError(true, "http://localhost:5000/api")
	assert.Contains(t, local.Message, "http://localhost:5000")
	assert.Len(t, local.Help, 4)

	prod := view.NewFatalError(false, "https://unisocial.example/api")
	assert.Contains(t, prod.Help[3], "https://unisocial.example/api")
}
