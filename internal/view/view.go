// Package view turns domain data into render-ready view-models. Nothing here
// knows about HTML or terminals; the html and terminal packages bind these
// models to an output.
package view

import (
	"github.com/nfrund/unisocial/internal/domain"
)

// Badge is a coloured label for a category or interest.
type Badge struct {
	Tag   string
	Label string
	Color string
}

// NewBadge resolves the badge for an interest or favourite-category tag.
func NewBadge(tag string) Badge {
	info := domain.InterestBadge(tag)
	return Badge{Tag: tag, Label: info.Label, Color: info.Color}
}

// Badges resolves a list of tags.
func Badges(tags []string) []Badge {
	out := make([]Badge, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewBadge(t))
	}
	return out
}

// Section names the top-level section shown.
type Section string

const (
	SectionAuth      Section = "auth"
	SectionDashboard Section = "dashboard"
	SectionProfile   Section = "profile"
)

// Tab is the visible form in the auth section.
type Tab string

const (
	TabLogin    Tab = "login"
	TabRegister Tab = "register"
)

// Session describes which top-level parts are visible and who is signed in.
type Session struct {
	Authenticated bool
	ShowAuth      bool
	ShowDashboard bool
	ShowHeader    bool
	ActiveTab     Tab

	UserID         string
	Name           string
	Career         string
	University     string
	Interests      []Badge
	InterestsEmpty string
}

// NewSession builds the session view for user, which may be nil.
func NewSession(user *domain.User, tab Tab) Session {
	if tab == "" {
		tab = TabLogin
	}
	if user == nil {
		return Session{ShowAuth: true, ActiveTab: tab}
	}

	s := Session{
		Authenticated: true,
		ShowDashboard: true,
		ShowHeader:    true,
		ActiveTab:     tab,
		UserID:        user.ID,
		Name:          user.Name,
		Career:        orDefault(user.Career, "Carrera no especificada"),
		University:    orDefault(user.University, "Universidad no especificada"),
		Interests:     Badges(user.Interests),
	}
	if len(s.Interests) == 0 {
		s.InterestsEmpty = "No hay intereses seleccionados"
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Dashboard is the signed-in home: session header, feed and users sidebar.
type Dashboard struct {
	Session Session
	Feed    Feed
	Users   UsersPanel
}
