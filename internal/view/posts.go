package view

import (
	"fmt"
	"time"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/format"
)

// Feed headings.
const (
	HeadingAll          = "Publicaciones Recientes"
	HeadingPersonalized = "Publicaciones Recomendadas Para Ti"
)

// PostCard is the render instruction for one post in the feed.
type PostCard struct {
	ID            string
	Anchor        string
	AuthorName    string
	TimeAgo       string
	Date          string
	CategoryName  string
	CategoryColor string
	// TitleHTML and ContentHTML are escaped and safe to emit verbatim.
	TitleHTML   string
	ContentHTML string
	Likes       int
	// LikesText is empty when there are no likes, in which case no badge
	// is shown.
	LikesText string
	Popular   bool
	Liked     bool
	CanLike   bool
	LikeLabel string
	LikeHint  string
}

// HasLikesBadge reports whether the likes badge is shown.
func (c PostCard) HasLikesBadge() bool {
	return c.LikesText != ""
}

// NewPostCard builds the card for p. authenticated controls whether the like
// action is available.
func NewPostCard(p domain.Post, now time.Time, authenticated bool) PostCard {
	cat := domain.PostCategory(p.Category)
	likes := p.Likes
	if likes < 0 {
		likes = 0
	}

	card := PostCard{
		ID:            p.ID,
		Anchor:        "post-" + p.ID,
		AuthorName:    p.AuthorName(),
		TimeAgo:       format.TimeAgo(now, p.CreatedAt.Time),
		Date:          format.FormatDate(p.CreatedAt.Time),
		CategoryName:  cat.Name,
		CategoryColor: cat.Color,
		ContentHTML:   format.FormatContent(p.Content),
		Likes:         likes,
		LikesText:     format.FormatLikesCount(likes),
		Popular:       likes >= 1,
		Liked:         p.Liked,
		CanLike:       authenticated,
	}
	if p.HasTitle() {
		card.TitleHTML = format.FormatContent(p.Title)
	}
	if authenticated {
		card.LikeLabel = "Me gusta"
	} else {
		card.LikeLabel = fmt.Sprintf("%d %s", likes, format.LikesWord(likes))
		card.LikeHint = "Inicia sesión para dar me gusta"
	}
	return card
}

// Feed is the post list section.
type Feed struct {
	Heading      string
	Personalized bool
	Sort         string
	Cards        []PostCard
	Empty        bool
	EmptyTitle   string
	EmptyText    string
	Total        int
	Mine         int
}

// NewFeed builds the feed view from already sorted posts.
func NewFeed(sorted []domain.Post, sort string, personalized bool, mine int, now time.Time, authenticated bool) Feed {
	f := Feed{
		Heading:      HeadingAll,
		Personalized: personalized,
		Sort:         sort,
		Total:        len(sorted),
		Mine:         mine,
	}
	if personalized {
		f.Heading = HeadingPersonalized
	}
	if len(sorted) == 0 {
		f.Empty = true
		f.EmptyTitle = "No hay publicaciones aún"
		f.EmptyText = "¡Sé el primero en compartir algo!"
		return f
	}
	f.Cards = make([]PostCard, 0, len(sorted))
	for _, p := range sorted {
		f.Cards = append(f.Cards, NewPostCard(p, now, authenticated))
	}
	return f
}
