package domain

// MaxRecentPosts is the number of recent posts shown on a profile.
const MaxRecentPosts = 5

// Profile is the aggregate returned by the profile endpoint.
type Profile struct {
	User        User         `json:"usuario"`
	Stats       ProfileStats `json:"estadisticas"`
	RecentPosts []Post       `json:"publicaciones_recientes"`
}

// ProfileStats holds a user's activity counters.
type ProfileStats struct {
	TotalPosts       int            `json:"total_publicaciones"`
	TotalLikes       int            `json:"total_likes_recibidos"`
	FavoriteCategory string         `json:"categoria_favorita"`
	CategoryUsage    map[string]int `json:"categorias_uso"`
}

// FavoriteCount returns the usage of the favourite category, zero when unknown.
func (s ProfileStats) FavoriteCount() int {
	if s.FavoriteCategory == "" || s.CategoryUsage == nil {
		return 0
	}
	return s.CategoryUsage[s.FavoriteCategory]
}

// Recent returns at most MaxRecentPosts posts.
func (p *Profile) Recent() []Post {
	if len(p.RecentPosts) > MaxRecentPosts {
		return p.RecentPosts[:MaxRecentPosts]
	}
	return p.RecentPosts
}
