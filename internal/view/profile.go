package view

import (
	"fmt"
	"time"

	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/format"
)

const recentContentMax = 150

// Profile is the profile page, split into sub-views that render on their own.
type Profile struct {
	Identity  ProfileIdentity
	Interests ProfileInterests
	Favorite  FavoriteCategory
	Recent    RecentPosts
}

// ProfileIdentity is the header block with the user's counters.
type ProfileIdentity struct {
	UserID        string
	Name          string
	Subtitle      string
	Joined        string
	PostsCount    int
	LikesCount    int
	CategoryCount int
}

// ProfileInterests lists the interest badges.
type ProfileInterests struct {
	Badges []Badge
	Empty  string
}

// FavoriteCategory is the most used category block.
type FavoriteCategory struct {
	Badge       Badge
	CountText   string
	Description string
	Empty       string
}

// RecentPosts lists at most domain.MaxRecentPosts compact posts.
type RecentPosts struct {
	Items []RecentPost
	Empty string
}

// RecentPost is a compact post on the profile page.
type RecentPost struct {
	ID            string
	CategoryName  string
	CategoryColor string
	TimeAgo       string
	Title         string
	Content       string
	Likes         int
}

// NewProfile builds every profile sub-view. A nil profile yields the empty
// state for each of them.
func NewProfile(p *domain.Profile, now time.Time) Profile {
	if p == nil {
		p = &domain.Profile{}
	}
	return Profile{
		Identity:  newIdentity(p),
		Interests: newInterests(p.User.Interests),
		Favorite:  newFavorite(p.Stats),
		Recent:    newRecent(p.Recent(), now),
	}
}

func newIdentity(p *domain.Profile) ProfileIdentity {
	u := p.User
	id := ProfileIdentity{
		UserID:        u.ID,
		Name:          u.Name,
		Subtitle:      fmt.Sprintf("%s • %s", orDefault(u.Career, "Sin carrera"), orDefault(u.University, "Sin universidad")),
		PostsCount:    p.Stats.TotalPosts,
		LikesCount:    p.Stats.TotalLikes,
		CategoryCount: len(p.Stats.CategoryUsage),
	}
	if !u.RegisteredAt.IsZero() {
		id.Joined = "Miembro desde " + format.MonthYear(u.RegisteredAt.Time)
	}
	return id
}

func newInterests(tags []string) ProfileInterests {
	if len(tags) == 0 {
		return ProfileInterests{Empty: "No hay intereses definidos"}
	}
	return ProfileInterests{Badges: Badges(tags)}
}

func newFavorite(stats domain.ProfileStats) FavoriteCategory {
	count := stats.FavoriteCount()
	if count == 0 {
		return FavoriteCategory{Empty: "Sin actividad suficiente"}
	}
	return FavoriteCategory{
		Badge:       NewBadge(stats.FavoriteCategory),
		CountText:   fmt.Sprintf("%d %s", count, format.PostsWord(count)),
		Description: "Tu categoría más utilizada",
	}
}

func newRecent(posts []domain.Post, now time.Time) RecentPosts {
	if len(posts) == 0 {
		return RecentPosts{Empty: "No hay publicaciones aún"}
	}
	items := make([]RecentPost, 0, len(posts))
	for _, p := range posts {
		cat := domain.PostCategory(p.Category)
		item := RecentPost{
			ID:            p.ID,
			CategoryName:  cat.Name,
			CategoryColor: cat.Color,
			TimeAgo:       format.TimeAgo(now, p.CreatedAt.Time),
			Content:       format.EscapeHTML(format.TruncateText(p.Content, recentContentMax)),
			Likes:         max(p.Likes, 0),
		}
		if p.HasTitle() {
			item.Title = format.EscapeHTML(p.Title)
		}
		items = append(items, item)
	}
	return RecentPosts{Items: items}
}
