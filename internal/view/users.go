package view

import "github.com/nfrund/unisocial/internal/domain"

// UsersPanel is the sidebar with online users and counters.
type UsersPanel struct {
	Online  []OnlineUser
	Empty   string
	Total   int
	Friends int
}

// OnlineUser is one row of the online list.
type OnlineUser struct {
	ID     string
	Name   string
	Career string
}

// NewUsersPanel builds the sidebar from the already filtered online users.
func NewUsersPanel(online []domain.User, total, friends int) UsersPanel {
	panel := UsersPanel{Total: total, Friends: friends}
	if len(online) == 0 {
		panel.Empty = "No hay usuarios en línea"
		return panel
	}
	for _, u := range online {
		panel.Online = append(panel.Online, OnlineUser{
			ID:     u.ID,
			Name:   u.Name,
			Career: orDefault(u.Career, "Estudiante"),
		})
	}
	return panel
}
