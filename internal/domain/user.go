package domain

// User is the session user record as returned by the API and persisted locally.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email,omitempty"`
	Career       string    `json:"carrera,omitempty"`
	University   string    `json:"universidad,omitempty"`
	Interests    []string  `json:"intereses,omitempty"`
	RegisteredAt Timestamp `json:"fecha_registro,omitempty"`
}

// HasInterests reports whether the user declared at least one interest tag.
func (u *User) HasInterests() bool {
	return u != nil && len(u.Interests) > 0
}

// Clone returns a deep copy, or nil for a nil user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Interests = append([]string(nil), u.Interests...)
	return &c
}

// Registration is the payload sent when creating an account.
type Registration struct {
	Name       string   `json:"nombre"`
	Email      string   `json:"email"`
	Password   string   `json:"contraseña"`
	University string   `json:"universidad"`
	Career     string   `json:"carrera"`
	Interests  []string `json:"intereses"`
}

// Credentials is the payload sent when logging in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}
