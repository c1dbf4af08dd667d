package html

import (
	"strconv"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view"
)

// Header is the navigation bar shown to signed-in users.
func Header(s view.Session, active view.Section) cmp.Node {
	if !s.ShowHeader {
		return cmp.Group{}
	}
	return g.Header(
		g.Class("header"),
		g.Strong(cmp.Text("UniSocial")),
		g.Nav(
			g.Class("nav"),
			navLink("/", "Inicio", active == view.SectionDashboard),
			navLink("/profile", "Mi Perfil", active == view.SectionProfile),
			navLink("/friends", "Amigos", false),
		),
		g.Div(
			g.Span(g.ID("user-name"), cmp.Text(s.Name)),
			g.Form(
				g.Method("post"),
				g.Action("/refresh"),
				g.Style("display:inline"),
				g.Button(g.Type("submit"), g.Class("btn"), cmp.Text("Actualizar")),
			),
			g.Form(
				g.Method("post"),
				g.Action("/auth/logout"),
				g.Style("display:inline"),
				g.Button(g.Type("submit"), g.Class("btn"), cmp.Text("Cerrar Sesión")),
			),
		),
	)
}

func navLink(href, label string, active bool) cmp.Node {
	return g.A(g.Href(href), cmp.If(active, g.Class("active")), cmp.Text(label))
}

// UserCard is the sidebar card describing the signed-in user.
func UserCard(s view.Session) cmp.Node {
	return g.Div(
		g.Class("card user-card"),
		g.H3(cmp.Text(s.Name)),
		g.P(cmp.Text(s.Career)),
		g.P(g.Class("post-meta"), cmp.Text(s.University)),
		interestBadges(s.Interests, s.InterestsEmpty),
	)
}

func interestBadges(badges []view.Badge, empty string) cmp.Node {
	if len(badges) == 0 {
		return g.P(g.Class("empty-state"), cmp.Text(empty))
	}
	return g.Div(g.Class("interests"), cmp.Map(badges, func(b view.Badge) cmp.Node {
		return g.Span(g.Class("badge"), g.Style("background:"+b.Color), cmp.Text(b.Label))
	}))
}

// UsersPanel lists online users with the counters.
func UsersPanel(p view.UsersPanel, feed view.Feed) cmp.Node {
	return g.Aside(
		g.Class("card"),
		g.H3(cmp.Text("Usuarios en línea")),
		cmp.If(p.Empty != "", g.P(g.Class("empty-state"), cmp.Text(p.Empty))),
		g.Ul(g.ID("online-users"), cmp.Map(p.Online, func(u view.OnlineUser) cmp.Node {
			return g.Li(g.Strong(cmp.Text(u.Name)), cmp.Text(" · "+u.Career))
		})),
		g.Dl(
			g.Class("stats"),
			stat("total-users", "Usuarios", p.Total),
			stat("friends-count", "Amigos", p.Friends),
			stat("total-posts", "Publicaciones", feed.Total),
			stat("my-posts", "Mis publicaciones", feed.Mine),
		),
	)
}

func stat(id, label string, n int) cmp.Node {
	return cmp.Group{
		g.Dt(cmp.Text(label)),
		g.Dd(g.ID(id), cmp.Text(strconv.Itoa(n))),
	}
}

// DashboardPage is the signed-in landing page.
func DashboardPage(d view.Dashboard, toasts []notify.Toast) templ.Component {
	return Document("Inicio", toasts,
		Header(d.Session, view.SectionDashboard),
		g.Main(
			g.ID("dashboard"),
			g.Class("container"),
			g.Div(UserCard(d.Session)),
			g.Div(CreatePostForm(), Feed(d.Feed)),
			UsersPanel(d.Users, d.Feed),
		),
	)
}

// AuthPage is shown to anonymous visitors. The public feed sits below the
// login card with likes disabled.
func AuthPage(s view.Session, university string, feed view.Feed, toasts []notify.Toast) templ.Component {
	return Document("Iniciar Sesión", toasts,
		AuthSection(s, university),
		g.Main(g.Style("max-width: 720px; margin: 0 auto;"), Feed(feed)),
	)
}
