// Package terminal renders the client's view-models for the CLI with
// lipgloss, prints toasts as they arrive and shows a loading line while API
// calls are in flight.
package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/unisocial/internal/notify"
)

// Palette, matching the web UI.
var (
	Primary = lipgloss.Color("#2563eb")
	Muted   = lipgloss.Color("#6b7280")
	Popular = lipgloss.Color("#f59e0b")
	Liked   = lipgloss.Color("#ef4444")

	kindColors = map[notify.Kind]lipgloss.Color{
		notify.KindSuccess: lipgloss.Color("#10b981"),
		notify.KindError:   lipgloss.Color("#ef4444"),
		notify.KindWarning: lipgloss.Color("#f59e0b"),
		notify.KindInfo:    lipgloss.Color("#3b82f6"),
	}
)

// Styles holds the styled components.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Card     lipgloss.Style
	Popular  lipgloss.Style
	Liked    lipgloss.Style
	Divider  lipgloss.Style
}

// NewStyles creates the default styles.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1).
			Width(72),
		Popular: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Popular).
			Padding(0, 1).
			Width(72),
		Liked: lipgloss.NewStyle().
			Foreground(Liked),
		Divider: lipgloss.NewStyle().
			Foreground(Muted),
	}
}

// Badge renders a coloured label.
func (s Styles) Badge(label, color string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(label)
}

// Toast renders one toast line.
func (s Styles) Toast(t notify.Toast) string {
	color, ok := kindColors[t.Kind]
	if !ok {
		color = kindColors[notify.KindInfo]
	}
	return lipgloss.NewStyle().Foreground(color).Render(t.Icon() + " " + t.Message)
}
