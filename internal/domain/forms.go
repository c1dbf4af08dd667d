package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nfrund/unisocial/internal/format"
)

type contextKey string

const domainKey = contextKey("institutional-domain")

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	_ = validatorInstance.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return format.IsValidEmail(fl.Field().String())
	})
	_ = validatorInstance.RegisterValidationCtx("institutional", validateInstitutional)
}

// validateInstitutional checks the email contains the institutional domain
// carried in the validation context.
func validateInstitutional(ctx context.Context, fl validator.FieldLevel) bool {
	domain, _ := ctx.Value(domainKey).(string)
	if domain == "" {
		return true
	}
	return strings.Contains(strings.ToLower(fl.Field().String()), strings.ToLower(domain))
}

// rule maps a failing field/tag pair to the message shown to the user. Rules
// are checked in order so the first applicable message wins.
type rule struct {
	field   string
	tag     string
	message string
}

// LoginForm is the login form as submitted.
type LoginForm struct {
	Email    string `validate:"required,emailshape,institutional"`
	Password string `validate:"required,min=6"`
}

// Validate trims the form and checks it against the institutional domain.
func (f *LoginForm) Validate(ctx context.Context, domain string) error {
	f.Email = strings.TrimSpace(f.Email)
	return validate(ctx, f, domain, []rule{
		{"", "required", "Por favor, completa todos los campos"},
		{"Email", "emailshape", "Por favor, ingresa un email válido"},
		{"Email", "institutional", institutionalMessage(domain)},
		{"Password", "min", "La contraseña debe tener al menos 6 caracteres"},
	})
}

// Credentials converts the validated form to the API payload.
func (f *LoginForm) Credentials() Credentials {
	return Credentials{Email: f.Email, Password: f.Password}
}

// RegisterForm is the registration form as submitted.
type RegisterForm struct {
	Name      string   `validate:"required"`
	Email     string   `validate:"required,emailshape,institutional"`
	Password  string   `validate:"required,min=6"`
	Career    string   `validate:"omitempty"`
	Interests []string `validate:"min=1"`
}

// Validate trims the form and checks it against the institutional domain.
func (f *RegisterForm) Validate(ctx context.Context, domain string) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Career = strings.TrimSpace(f.Career)
	return validate(ctx, f, domain, []rule{
		{"", "required", "Por favor, completa los campos obligatorios"},
		{"Password", "min", "La contraseña debe tener al menos 6 caracteres"},
		{"Email", "emailshape", "Por favor, ingresa un email válido"},
		{"Email", "institutional", institutionalMessage(domain)},
		{"Interests", "min", "Por favor, selecciona al menos un interés"},
	})
}

// Registration converts the validated form to the API payload.
func (f *RegisterForm) Registration(university string) Registration {
	interests := f.Interests
	if interests == nil {
		interests = []string{}
	}
	return Registration{
		Name:       f.Name,
		Email:      f.Email,
		Password:   f.Password,
		University: university,
		Career:     f.Career,
		Interests:  interests,
	}
}

// PostForm is the new-post form as submitted.
type PostForm struct {
	Title    string
	Content  string `validate:"required"`
	Category string
}

// Validate trims the form and defaults the category.
func (f *PostForm) Validate(ctx context.Context) error {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	return validate(ctx, f, "", []rule{
		{"Content", "required", ErrEmptyContent.Error()},
	})
}

// NewPost converts the validated form to the API payload.
func (f *PostForm) NewPost(authorID string) NewPost {
	return NewPost{
		AuthorID: authorID,
		Content:  f.Content,
		Category: f.Category,
		Title:    f.Title,
	}
}

func validate(ctx context.Context, form any, domain string, rules []rule) error {
	ctx = context.WithValue(ctx, domainKey, domain)
	err := validatorInstance.StructCtx(ctx, form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, r := range rules {
		for _, fe := range verrs {
			if fe.Tag() != r.tag {
				continue
			}
			if r.field != "" && fe.Field() != r.field {
				continue
			}
			return &ValidationError{Field: fe.Field(), Tag: fe.Tag(), Message: r.message}
		}
	}

	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Tag: fe.Tag(), Message: fmt.Sprintf("Campo inválido: %s", fe.Field())}
}

func institutionalMessage(domain string) string {
	return fmt.Sprintf("Debes usar tu email institucional (@%s)", domain)
}
