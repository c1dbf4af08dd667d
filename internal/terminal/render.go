package terminal

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nfrund/unisocial/internal/view"
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag   = regexp.MustCompile(`<[^>]*>`)
)

// Plain turns the escaped, linkified content of a card back into text.
func Plain(s string) string {
	s = breakTag.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	return stdhtml.UnescapeString(s)
}

// PostCard renders one post.
func (s Styles) PostCard(c view.PostCard) string {
	meta := []string{s.Bold.Render(c.AuthorName)}
	if c.TimeAgo != "" {
		meta = append(meta, s.Muted.Render(c.TimeAgo))
	}
	meta = append(meta, s.Badge(c.CategoryName, c.CategoryColor))
	if c.HasLikesBadge() {
		meta = append(meta, s.Liked.Render("❤ "+c.LikesText))
	}

	lines := []string{strings.Join(meta, " "), ""}
	if c.TitleHTML != "" {
		lines = append(lines, s.Subtitle.Render(Plain(c.TitleHTML)))
	}
	lines = append(lines, Plain(c.ContentHTML), "", s.likeLine(c))

	box := s.Card
	if c.Popular {
		box = s.Popular
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (s Styles) likeLine(c view.PostCard) string {
	id := s.Muted.Render("id: " + c.ID)
	if !c.CanLike {
		return fmt.Sprintf("🤍 %s  %s", c.LikeLabel, s.Muted.Render(c.LikeHint))
	}
	label := fmt.Sprintf("🤍 %s (%d)", c.LikeLabel, c.Likes)
	if c.Liked {
		label = s.Liked.Render(fmt.Sprintf("❤️ %s (%d)", c.LikeLabel, c.Likes))
	}
	return label + "  " + id
}

// Feed renders the heading and every card.
func (s Styles) Feed(f view.Feed) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(f.Heading))
	b.WriteString(s.Muted.Render(fmt.Sprintf("  (%d, orden: %s)", f.Total, f.Sort)))
	b.WriteString("\n")
	if f.Empty {
		b.WriteString(s.Subtitle.Render(f.EmptyTitle) + "\n" + s.Muted.Render(f.EmptyText) + "\n")
		return b.String()
	}
	for _, c := range f.Cards {
		b.WriteString(s.PostCard(c))
		b.WriteString("\n")
	}
	return b.String()
}

// Session renders the signed-in user, or a hint to sign in.
func (s Styles) Session(v view.Session) string {
	if !v.Authenticated {
		return s.Muted.Render("No has iniciado sesión. Usa: unisocial login")
	}
	lines := []string{
		s.Title.Render(v.Name),
		v.Career,
		s.Muted.Render(v.University),
		s.interests(v.Interests, v.InterestsEmpty),
	}
	return strings.Join(lines, "\n")
}

func (s Styles) interests(badges []view.Badge, empty string) string {
	if len(badges) == 0 {
		return s.Muted.Render(empty)
	}
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, s.Badge(b.Label, b.Color))
	}
	return strings.Join(out, " ")
}

// Users renders the online list and the counters.
func (s Styles) Users(p view.UsersPanel, f view.Feed) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Usuarios en línea") + "\n")
	if p.Empty != "" {
		b.WriteString(s.Muted.Render(p.Empty) + "\n")
	}
	for _, u := range p.Online {
		b.WriteString(fmt.Sprintf("• %s %s\n", s.Bold.Render(u.Name), s.Muted.Render(u.Career)))
	}
	b.WriteString(s.Divider.Render(strings.Repeat("─", 24)) + "\n")
	b.WriteString(fmt.Sprintf("Usuarios: %d  Amigos: %d  Publicaciones: %d  Mías: %d\n", p.Total, p.Friends, f.Total, f.Mine))
	return b.String()
}

// Dashboard renders the signed-in home.
func (s Styles) Dashboard(d view.Dashboard) string {
	return strings.Join([]string{s.Session(d.Session), "", s.Feed(d.Feed), s.Users(d.Users, d.Feed)}, "\n")
}

// Profile renders the profile aggregate.
func (s Styles) Profile(p view.Profile) string {
	id := p.Identity
	var b strings.Builder
	b.WriteString(s.Title.Render(id.Name) + "\n")
	b.WriteString(id.Subtitle + "\n")
	if id.Joined != "" {
		b.WriteString(s.Muted.Render(id.Joined) + "\n")
	}
	b.WriteString(fmt.Sprintf("Publicaciones: %d  Likes recibidos: %d  Categorías: %d\n\n", id.PostsCount, id.LikesCount, id.CategoryCount))

	b.WriteString(s.Subtitle.Render("Intereses") + "\n")
	b.WriteString(s.interests(p.Interests.Badges, p.Interests.Empty) + "\n\n")

	b.WriteString(s.Subtitle.Render("Categoría favorita") + "\n")
	if p.Favorite.Empty != "" {
		b.WriteString(s.Muted.Render(p.Favorite.Empty) + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%s %s %s\n\n", s.Badge(p.Favorite.Badge.Label, p.Favorite.Badge.Color), p.Favorite.CountText, s.Muted.Render(p.Favorite.Description)))
	}

	b.WriteString(s.Subtitle.Render("Publicaciones recientes") + "\n")
	if p.Recent.Empty != "" {
		b.WriteString(s.Muted.Render(p.Recent.Empty) + "\n")
	}
	for _, r := range p.Recent.Items {
		head := fmt.Sprintf("%s %s ❤ %d", s.Badge(r.CategoryName, r.CategoryColor), s.Muted.Render(r.TimeAgo), r.Likes)
		body := Plain(r.Content)
		if r.Title != "" {
			body = s.Bold.Render(Plain(r.Title)) + "\n" + body
		}
		b.WriteString(s.Card.Render(head+"\n"+body) + "\n")
	}
	return b.String()
}

// Fatal renders the startup failure with its help list.
func (s Styles) Fatal(f view.FatalError) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(Liked).Bold(true).Render("⚠ " + f.Title),
		f.Message,
		"",
		s.Subtitle.Render(f.HelpLabel + ":"),
	}
	for _, h := range f.Help {
		lines = append(lines, "  • "+h)
	}
	return strings.Join(lines, "\n")
}
