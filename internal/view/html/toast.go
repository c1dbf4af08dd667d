package html

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/unisocial/internal/notify"
)

// Toast renders one toast.
func Toast(t notify.Toast) cmp.Node {
	return g.Div(
		g.Class("toast toast-"+string(t.Kind)),
		g.Role("status"),
		g.Span(g.Class("toast-icon"), cmp.Text(t.Icon())),
		cmp.Text(" "+t.Message),
	)
}

// ToastContainer is the fixed container toasts live in.
func ToastContainer(toasts []notify.Toast) cmp.Node {
	return g.Div(g.ID("toast-container"), cmp.Map(toasts, Toast))
}

// ToastsOOB appends toasts to the container from an htmx fragment response.
func ToastsOOB(toasts []notify.Toast) cmp.Node {
	if len(toasts) == 0 {
		return cmp.Group{}
	}
	return g.Div(hx.SwapOOB("beforeend:#toast-container"), cmp.Map(toasts, Toast))
}
