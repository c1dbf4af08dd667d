package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/notify"
)

// Printer writes toasts to a terminal as they arrive. It implements
// notify.Notifier and is fed by the toast bus.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, styles Styles) *Printer {
	return &Printer{w: w, styles: styles}
}

func (p *Printer) Notify(_ context.Context, t notify.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, p.styles.Toast(t))
}

const loadingText = "⏳ Cargando..."

// Spinner is the CLI loading indicator: one status line shown while any API
// call is in flight, erased when the last one finishes.
type Spinner struct {
	*apiclient.Counter
	mu sync.Mutex
	w  io.Writer
}

// NewSpinner creates a Spinner on w. A disabled spinner only counts, which
// suits output that is not a terminal.
func NewSpinner(w io.Writer, enabled bool) *Spinner {
	s := &Spinner{Counter: &apiclient.Counter{}, w: w}
	if enabled {
		s.OnChange = s.draw
	}
	return s
}

func (s *Spinner) draw(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		fmt.Fprint(s.w, "\r"+lipgloss.NewStyle().Foreground(Muted).Render(loadingText))
		return
	}
	fmt.Fprint(s.w, "\r\x1b[K")
}
