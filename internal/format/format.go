// Package format holds the stateless text helpers shared by the renderers:
// escaping, content formatting, relative dates and counters.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&/=]*)`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)

	spanish = message.NewPrinter(language.Spanish)
)

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var longMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// IsValidEmail reports whether s has the shape local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// FormatContent escapes post text, turns URLs into links and newlines into <br>.
// The result is safe to emit as raw HTML.
func FormatContent(s string) string {
	escaped := EscapeHTML(s)
	linked := urlPattern.ReplaceAllStringFunc(escaped, func(u string) string {
		return `<a href="` + u + `" target="_blank" rel="noopener">` + u + `</a>`
	})
	return strings.ReplaceAll(linked, "\n", "<br>")
}

// TruncateText cuts s to max runes and appends an ellipsis when shortened.
func TruncateText(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// TimeAgo renders t relative to now in Spanish.
func TimeAgo(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Ahora mismo"
	case mins < 60:
		return fmt.Sprintf("Hace %d min", mins)
	case hours < 24:
		return fmt.Sprintf("Hace %dh", hours)
	case days < 7:
		return fmt.Sprintf("Hace %d días", days)
	}

	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return fmt.Sprintf("%d %s %d", local.Day(), shortMonths[local.Month()-1], local.Year())
	}
	return fmt.Sprintf("%d %s", local.Day(), shortMonths[local.Month()-1])
}

// FormatDate renders t as "15 oct 2024, 10:30".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d, %02d:%02d", t.Day(), shortMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// MonthYear renders t as "octubre de 2024".
func MonthYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s de %d", longMonths[t.Month()-1], t.Year())
}

// FormatNumber abbreviates large counts: 1500 → "1.5K", 2300000 → "2.3M".
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatLikesCount renders the like badge text; zero renders nothing.
func FormatLikesCount(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "1 persona"
	case n < 1_000:
		return fmt.Sprintf("%d personas", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fK personas", float64(n)/1_000)
	}
	return fmt.Sprintf("%.1fM personas", float64(n)/1_000_000)
}

// LikesWord picks the singular or plural noun for a like count.
func LikesWord(n int) string {
	if n == 1 {
		return "like"
	}
	return "likes"
}

// PostsWord picks "publicación" or "publicaciones".
func PostsWord(n int) string {
	if n == 1 {
		return "publicación"
	}
	return "publicaciones"
}

// Count renders an integer with Spanish digit grouping.
func Count(n int) string {
	return spanish.Sprintf("%d", n)
}
