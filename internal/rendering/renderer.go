// Package rendering writes templ components and gomponents nodes to echo
// responses, either as full pages or as htmx fragments carrying toasts.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/view/html"
)

// node is what gomponents.Node satisfies.
type node interface {
	Render(w io.Writer) error
}

// Renderer renders any component the web UI produces. It also satisfies
// echo.Renderer, taking the component as the data argument.
type Renderer struct {
	logger *slog.Logger
}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{logger: slog.Default().With("component", "renderer")}
}

func (r *Renderer) render(ctx context.Context, component any, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case node:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type %T", component)
	}
}

// Bytes renders a component to memory.
func (r *Renderer) Bytes(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

// Page renders a full document. The component is rendered before the status
// is written so a failure can still become a 500.
func (r *Renderer) Page(c echo.Context, status int, component any) error {
	body, err := r.Bytes(c.Request().Context(), component)
	if err != nil {
		r.logger.Error("Failed to render page", "path", c.Path(), "error", err)
		return err
	}
	return c.HTMLBlob(status, body)
}

// Fragment renders a partial for htmx and appends the toasts as an
// out-of-band swap into the toast container.
func (r *Renderer) Fragment(c echo.Context, status int, component any, toasts []notify.Toast) error {
	var buf bytes.Buffer
	ctx := c.Request().Context()
	if component != nil {
		if err := r.render(ctx, component, &buf); err != nil {
			r.logger.Error("Failed to render fragment", "path", c.Path(), "error", err)
			return err
		}
	}
	if err := html.ToastsOOB(toasts).Render(&buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// Render implements echo.Renderer. The name is ignored.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(c.Request().Context(), data, w)
}
