package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common client-side failures.
var (
	ErrNotAuthenticated   = errors.New("no session user")
	ErrNoUserID           = errors.New("No se puede cargar el perfil sin ID de usuario")
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	ErrPostNotFound       = errors.New("post not loaded")
	ErrEmptyContent       = errors.New("El contenido no puede estar vacío")
)

// ValidationError is a client-side form validation failure. Message is the
// user-facing text.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
