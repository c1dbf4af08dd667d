package html

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/view"
)

// AuthSection is the login/register card shown to anonymous visitors.
func AuthSection(s view.Session, university string) cmp.Node {
	return g.Section(
		g.ID("auth-section"),
		g.Class("card"),
		g.Style("max-width: 480px; margin: 3rem auto;"),
		g.H1(cmp.Text("UniSocial")),
		g.P(cmp.Text(university)),
		g.Div(
			g.Class("tabs"),
			tabLink(view.TabLogin, "Iniciar Sesión", s.ActiveTab),
			tabLink(view.TabRegister, "Registrarse", s.ActiveTab),
		),
		cmp.If(s.ActiveTab != view.TabRegister, loginForm()),
		cmp.If(s.ActiveTab == view.TabRegister, registerForm(university)),
	)
}

func tabLink(tab view.Tab, label string, active view.Tab) cmp.Node {
	return g.A(
		g.Href("/?tab="+string(tab)),
		cmp.If(tab == active, g.Class("active")),
		cmp.Text(label),
	)
}

func loginForm() cmp.Node {
	return g.Form(
		g.ID("login-form"),
		g.Method("post"),
		g.Action("/auth/login"),
		field("login-email", "Email institucional", g.Input(g.ID("login-email"), g.Type("email"), g.Name("email"), g.Required())),
		field("login-password", "Contraseña", g.Input(g.ID("login-password"), g.Type("password"), g.Name("password"), g.Required())),
		g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Iniciar Sesión")),
	)
}

func registerForm(university string) cmp.Node {
	return g.Form(
		g.ID("register-form"),
		g.Method("post"),
		g.Action("/auth/register"),
		field("register-name", "Nombre completo", g.Input(g.ID("register-name"), g.Name("name"), g.Required())),
		field("register-email", "Email institucional", g.Input(g.ID("register-email"), g.Type("email"), g.Name("email"), g.Required())),
		field("register-password", "Contraseña", g.Input(g.ID("register-password"), g.Type("password"), g.Name("password"), g.Required())),
		field("register-university", "Universidad", g.Input(g.ID("register-university"), g.Value(university), g.ReadOnly())),
		field("register-career", "Carrera", g.Input(g.ID("register-career"), g.Name("career"))),
		g.FieldSet(
			g.Legend(cmp.Text("Intereses")),
			cmp.Map(domain.Categories(), func(c domain.CategoryInfo) cmp.Node {
				return g.Label(
					g.Input(g.Type("checkbox"), g.Name("interests"), g.Value(c.Tag)),
					cmp.Text(" "+c.Label),
				)
			}),
		),
		g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Crear Cuenta")),
	)
}

func field(id, label string, input cmp.Node) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(id), cmp.Text(label)),
		input,
	)
}
