package html

import (
	"strconv"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

// ProfileSection renders the profile aggregate.
func ProfileSection(p view.Profile) cmp.Node {
	id := p.Identity
	return g.Section(
		g.ID("profile-section"),
		g.Div(
			g.Class("card"),
			g.H2(g.ID("profile-name"), cmp.Text(id.Name)),
			g.P(cmp.Text(id.Subtitle)),
			cmp.If(id.Joined != "", g.P(g.Class("post-meta"), cmp.Text(id.Joined))),
			g.Dl(
				g.Class("stats"),
				stat("profile-posts", "Publicaciones", id.PostsCount),
				stat("profile-likes", "Likes recibidos", id.LikesCount),
				stat("profile-categories", "Categorías", id.CategoryCount),
			),
		),
		g.Div(
			g.Class("card"),
			g.H3(cmp.Text("Intereses")),
			interestBadges(p.Interests.Badges, p.Interests.Empty),
		),
		g.Div(
			g.Class("card"),
			g.H3(cmp.Text("Categoría favorita")),
			favorite(p.Favorite),
		),
		g.Div(
			g.Class("card"),
			g.H3(cmp.Text("Publicaciones recientes")),
			cmp.If(p.Recent.Empty != "", g.P(g.Class("empty-state"), cmp.Text(p.Recent.Empty))),
			cmp.Map(p.Recent.Items, recentPost),
		),
	)
}

func favorite(f view.FavoriteCategory) cmp.Node {
	if f.Empty != "" {
		return g.P(g.Class("empty-state"), cmp.Text(f.Empty))
	}
	return g.Div(
		g.Span(g.Class("badge"), g.Style("background:"+f.Badge.Color), cmp.Text(f.Badge.Label)),
		g.P(cmp.Text(f.CountText)),
		g.Small(cmp.Text(f.Description)),
	)
}

// Title and Content arrive escaped.
func recentPost(r view.RecentPost) cmp.Node {
	return g.Article(
		g.Class("post"),
		g.Div(
			g.Class("post-meta"),
			g.Span(g.Class("post-category"), g.Style("background:"+r.CategoryColor), cmp.Text(r.CategoryName)),
			g.Span(cmp.Text(r.TimeAgo)),
			g.Span(cmp.Text("❤️ "+strconv.Itoa(r.Likes))),
		),
		cmp.If(r.Title != "", g.H4(cmp.Raw(r.Title))),
		g.P(cmp.Raw(r.Content)),
	)
}

// ProfilePage is the full profile screen.
func ProfilePage(s view.Session, p view.Profile, toasts []notify.Toast) templ.Component {
	return Document("Mi Perfil", toasts,
		Header(s, view.SectionProfile),
		g.Main(g.Style("max-width: 720px; margin: 1.5rem auto;"), ProfileSection(p)),
	)
}
