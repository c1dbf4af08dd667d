package notify

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/domain"
)

// User-facing messages for failures that carry no server text.
const (
	MsgConnection = "Error de conexión. Verifica que el servidor esté ejecutándose."
	MsgTimeout    = "La solicitud tardó demasiado. Inténtalo de nuevo."
	MsgMalformed  = "Error al procesar la respuesta del servidor"
)

// Message turns an error into the text shown to the user. Server-provided
// messages are shown as is.
func Message(err error) string {
	var (
		httpErr   *apiclient.HTTPError
		serverErr *apiclient.ServerError
		valErr    *domain.ValidationError
		netErr    net.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return MsgTimeout
	case errors.Is(err, apiclient.ErrTransport):
		return MsgConnection
	case errors.Is(err, apiclient.ErrEmptyResponse):
		return apiclient.ErrEmptyResponse.Error()
	case errors.Is(err, apiclient.ErrMalformedResponse):
		return MsgMalformed
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &httpErr):
		return httpErr.Error()
	case errors.As(err, &serverErr):
		return serverErr.Error()
	default:
		return err.Error()
	}
}

// Classify maps an error to a toast: validation failures are warnings,
// everything else an error.
func Classify(err error) Toast {
	if domain.IsValidation(err) {
		return Warning(Message(err))
	}
	return Error(Message(err))
}

// Classifyf is Classify with the message prefixed, e.g. "Error al cargar el
// perfil: <msg>".
func Classifyf(prefix string, err error) Toast {
	t := Classify(err)
	t.Message = fmt.Sprintf("%s: %s", prefix, t.Message)
	return t
}
