package html

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/view"
)

// FeedContainerID is the element the feed controls re-render into.
const FeedContainerID = "posts-container"

// PostCard renders one post. The like button swaps the whole card with the
// server's fresh rendering.
func PostCard(c view.PostCard) cmp.Node {
	return g.Article(
		g.ID(c.Anchor),
		g.Class(classes("post", c.Popular, "popular")),
		g.Div(
			g.Class("post-meta"),
			g.Strong(cmp.Text(c.AuthorName)),
			g.Span(cmp.If(c.Date != "", g.Title(c.Date)), cmp.Text(c.TimeAgo)),
			g.Span(g.Class("post-category"), g.Style("background:"+c.CategoryColor), cmp.Text(c.CategoryName)),
			cmp.If(c.HasLikesBadge(), g.Span(g.Class("likes-badge"), cmp.Text("❤️ "+c.LikesText))),
		),
		cmp.If(c.TitleHTML != "", g.H3(g.Class("post-title"), cmp.Raw(c.TitleHTML))),
		g.Div(g.Class("post-content"), cmp.Raw(c.ContentHTML)),
		g.Div(
			g.Class("post-actions"),
			likeButton(c),
			g.Button(
				g.Type("button"),
				hx.Post("/posts/"+c.ID+"/share"),
				hx.Swap("none"),
				cmp.Text("🔗 Compartir"),
			),
			cmp.If(c.CanLike, g.Button(
				g.Type("button"),
				hx.Post("/posts/"+c.ID+"/report"),
				hx.Swap("none"),
				hx.Confirm("¿Reportar esta publicación?"),
				cmp.Text("⚑ Reportar"),
			)),
		),
	)
}

func likeButton(c view.PostCard) cmp.Node {
	if !c.CanLike {
		return g.Button(
			g.Type("button"),
			g.Disabled(),
			g.Title(c.LikeHint),
			cmp.Text("🤍 "+c.LikeLabel),
		)
	}
	icon := "🤍"
	if c.Liked {
		icon = "❤️"
	}
	return g.Button(
		g.Type("button"),
		cmp.If(c.Liked, g.Class("liked")),
		hx.Post("/posts/"+c.ID+"/like"),
		hx.Target("#"+c.Anchor),
		hx.Swap("outerHTML"),
		cmp.Text(icon+" "+c.LikeLabel+" ("+strconv.Itoa(c.Likes)+")"),
	)
}

// Feed renders the feed container: heading, controls and the cards.
func Feed(f view.Feed) cmp.Node {
	mode := "all"
	if f.Personalized {
		mode = "personalized"
	}
	return g.Section(
		g.ID(FeedContainerID),
		g.Div(
			g.Class("feed-header"),
			g.H2(g.ID("feed-title"), cmp.Text(f.Heading)),
			g.Div(
				g.Class("feed-controls"),
				feedLink("all", f.Sort, "Todas", mode == "all"),
				feedLink("personalized", f.Sort, "Para ti", mode == "personalized"),
				g.Select(
					g.Name("sort"),
					hx.Get("/feed?mode="+mode),
					hx.Target("#"+FeedContainerID),
					hx.Swap("outerHTML"),
					sortOption("recent", "Más recientes", f.Sort),
					sortOption("popular", "Más populares", f.Sort),
				),
			),
		),
		cmp.If(f.Empty, g.Div(
			g.Class("empty-state"),
			g.H3(cmp.Text(f.EmptyTitle)),
			g.P(cmp.Text(f.EmptyText)),
		)),
		cmp.Map(f.Cards, PostCard),
	)
}

func feedLink(mode, sort, label string, active bool) cmp.Node {
	return g.Button(
		g.Type("button"),
		g.Class(classes("btn", active, "active")),
		hx.Get("/feed?mode="+mode+"&sort="+sort),
		hx.Target("#"+FeedContainerID),
		hx.Swap("outerHTML"),
		cmp.Text(label),
	)
}

func classes(base string, on bool, extra string) string {
	if on {
		return base + " " + extra
	}
	return base
}

func sortOption(value, label, current string) cmp.Node {
	return g.Option(g.Value(value), cmp.If(value == current, g.Selected()), cmp.Text(label))
}

// CreatePostForm is the new-post form on the dashboard.
func CreatePostForm() cmp.Node {
	return g.Form(
		g.ID("create-post-form"),
		g.Class("card"),
		g.Method("post"),
		g.Action("/posts"),
		g.Input(g.Name("title"), g.Placeholder("Título (opcional)")),
		g.Textarea(g.Name("content"), g.Placeholder("¿Qué quieres compartir?"), g.Rows("3")),
		g.Select(
			g.Name("category"),
			cmp.Map(domain.Categories(), func(c domain.CategoryInfo) cmp.Node {
				return g.Option(g.Value(c.Tag), cmp.Text(c.Label))
			}),
		),
		g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Publicar")),
	)
}
