package handlers

import "github.com/nfrund/unisocial/internal/domain"

// LoginRequest is the login form as posted by the browser.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Form converts the request to the domain form, which does the validation.
func (r LoginRequest) Form() domain.LoginForm {
	return domain.LoginForm{Email: r.Email, Password: r.Password}
}

// RegisterRequest is the registration form. Interests arrive as repeated
// checkbox values.
type RegisterRequest struct {
	Name      string   `form:"name"`
	Email     string   `form:"email"`
	Password  string   `form:"password"`
	Career    string   `form:"career"`
	Interests []string `form:"interests"`
}

func (r RegisterRequest) Form() domain.RegisterForm {
	return domain.RegisterForm{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Career:    r.Career,
		Interests: r.Interests,
	}
}

// PostRequest is the new-post form.
type PostRequest struct {
	Title    string `form:"title"`
	Content  string `form:"content"`
	Category string `form:"category"`
}

func (r PostRequest) Form() domain.PostForm {
	return domain.PostForm{Title: r.Title, Content: r.Content, Category: r.Category}
}

// FeedRequest selects the feed mode and order.
type FeedRequest struct {
	Mode string `query:"mode"`
	Sort string `query:"sort"`
}

// Personalized reports whether the personalized feed was asked for.
func (r FeedRequest) Personalized() bool {
	return r.Mode == "personalized"
}
