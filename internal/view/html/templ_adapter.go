package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
)

// GomponentToTemplAdapter wraps a gomponents node so it satisfies
// templ.Component. The server's renderer only speaks templ.
type GomponentToTemplAdapter struct {
	Node cmp.Node
}

// Render implements templ.Component.
func (a *GomponentToTemplAdapter) Render(ctx context.Context, w io.Writer) error {
	return a.Node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents node into a templ.Component.
func AdaptGomponentToTempl(node cmp.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}

// TemplToGomponentAdapter wraps a templ.Component so it can sit inside a
// gomponents tree.
type TemplToGomponentAdapter struct {
	Component templ.Component
}

// Render implements cmp.Node. gomponents passes no context, so the
// component renders with context.Background().
func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	return a.Component.Render(context.Background(), w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents node.
func AdaptTemplToGomponent(component templ.Component) cmp.Node {
	return &TemplToGomponentAdapter{Component: component}
}
