package html

import (
	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/view"
)

// FatalPage replaces the whole UI once the startup retries are exhausted.
func FatalPage(f view.FatalError) templ.Component {
	return Document(f.Title, nil,
		g.Div(
			g.ID("fatal-error"),
			g.Class("fatal"),
			g.Div(
				g.Class("card"),
				g.Style("max-width: 520px; text-align: center;"),
				g.H2(cmp.Text("⚠️ "+f.Title)),
				g.P(cmp.Text(f.Message)),
				g.A(g.Href("/"), g.Class("btn btn-primary"), cmp.Text(f.RetryLabel)),
				g.Details(
					g.Summary(cmp.Text(f.HelpLabel)),
					g.Ul(cmp.Map(f.Help, func(s string) cmp.Node { return g.Li(cmp.Text(s)) })),
				),
			),
		),
	)
}
