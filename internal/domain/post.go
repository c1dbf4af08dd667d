package domain

import "strings"

// UnknownAuthorName is shown when a post arrives without author details.
const UnknownAuthorName = "Usuario Desconocido"

// Author is the embedded author summary of a post.
type Author struct {
	ID         string `json:"_id"`
	Name       string `json:"nombre"`
	Career     string `json:"carrera,omitempty"`
	University string `json:"universidad,omitempty"`
}

// Post is a feed item. Likes and Liked are only ever set from server data.
type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id,omitempty"`
	Author    *Author   `json:"autor,omitempty"`
	Title     string    `json:"titulo,omitempty"`
	Content   string    `json:"contenido"`
	Category  string    `json:"categoria"`
	CreatedAt Timestamp `json:"fecha_creacion"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"usuario_dio_like"`
	LikedBy   []string  `json:"usuarios_likes,omitempty"`
}

// AuthorName returns the author's display name or the unknown-author fallback.
func (p *Post) AuthorName() string {
	if p.Author == nil || p.Author.Name == "" {
		return UnknownAuthorName
	}
	return p.Author.Name
}

// AuthorID returns the author reference, preferring the embedded author.
func (p *Post) AuthorID() string {
	if p.Author != nil && p.Author.ID != "" {
		return p.Author.ID
	}
	return p.UserID
}

// HasTitle reports whether the optional title carries any text.
func (p *Post) HasTitle() bool {
	return strings.TrimSpace(p.Title) != ""
}

// Normalize fills defaults for like fields. When the list of likers is
// present its length is the like count.
func (p *Post) Normalize() {
	if p.Likes < 0 {
		p.Likes = 0
	}
	if p.LikedBy != nil {
		p.Likes = len(p.LikedBy)
	}
}

// NewPost is the payload sent when creating a post. Title is omitted when blank.
type NewPost struct {
	AuthorID string `json:"autor_id"`
	Content  string `json:"contenido"`
	Category string `json:"categoria"`
	Title    string `json:"titulo,omitempty"`
}

// LikeState is the server's view of a post's likes after a toggle.
type LikeState struct {
	PostID string `json:"publicacion_id,omitempty"`
	Likes  int    `json:"likes"`
	Liked  bool   `json:"usuario_dio_like"`
}
