// Package html binds the view-models to HTML with gomponents, using htmx
// attributes for the fragments that re-render in place (likes, feed).
package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/notify"
)

const (
	htmxSrc       = "https://unpkg.com/htmx.org@2.0.4"
	stylesheetURL = "/static/app.css"
)

// CalculateTitle builds the document title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - UniSocial"
	}
	return "UniSocial"
}

// Document wraps body in the full HTML shell, including the toast container
// seeded with toasts.
func Document(title string, toasts []notify.Toast, body ...cmp.Node) templ.Component {
	return AdaptGomponentToTempl(g.Doctype(
		g.HTML(
			g.Lang("es"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Script(g.Src(htmxSrc)),
				g.Link(g.Rel("stylesheet"), g.Href(stylesheetURL)),
			),
			g.Body(
				g.Div(g.ID("loading"), g.Class("htmx-indicator loading"), cmp.Text("Cargando...")),
				ToastContainer(toasts),
				cmp.Group(body),
				AdaptTemplToGomponent(toastDismissScript),
			),
		),
	))
}

// toastDismissScript removes toasts a few seconds after they are shown,
// including those swapped in by htmx.
var toastDismissScript = templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, `<script>
(function () {
  function arm(root) {
    root.querySelectorAll(".toast:not([data-armed])").forEach(function (el) {
      el.setAttribute("data-armed", "1");
      setTimeout(function () { el.remove(); }, 4000);
    });
  }
  document.addEventListener("DOMContentLoaded", function () { arm(document); });
  document.addEventListener("htmx:afterSettle", function () { arm(document); });
  document.addEventListener("copyLink", function (e) {
    if (navigator.clipboard) { navigator.clipboard.writeText(e.detail.value); }
  });
})();
</script>`)
	return err
})
