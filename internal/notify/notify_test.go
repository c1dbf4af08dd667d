package notify_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/domain"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/pubsub"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want notify.Toast
	}{
		{"transport", fmt.Errorf("%w: dial tcp", apiclient.ErrTransport), notify.Error(notify.MsgConnection)},
		{"timeout", fmt.Errorf("%w: %w", apiclient.ErrTransport, context.DeadlineExceeded), notify.Error(notify.MsgTimeout)},
		{"http with message", &apiclient.HTTPError{Status: 400, Message: "El email ya está registrado"}, notify.Error("El email ya está registrado")},
		{"http without message", &apiclient.HTTPError{Status: 500}, notify.Error("HTTP error! status: 500")},
		{"empty body", apiclient.ErrEmptyResponse, notify.Error("Respuesta vacía del servidor")},
		{"malformed", fmt.Errorf("%w: status 200", apiclient.ErrMalformedResponse), notify.Error(notify.MsgMalformed)},
		{"validation", &domain.ValidationError{Message: "Por favor, completa todos los campos"}, notify.Warning("Por favor, completa todos los campos")},
		{"plain", errors.New("algo salió mal"), notify.Error("algo salió mal")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notify.Classify(tt.err))
		})
	}

	prefixed := notify.Classifyf("Error al cargar el perfil", &apiclient.ServerError{Message: "Usuario no encontrado"})
	assert.Equal(t, "Error al cargar el perfil: Usuario no encontrado", prefixed.Message)
	assert.Equal(t, notify.KindError, prefixed.Kind)
}

func TestRecorder(t *testing.T) {
	rec := notify.NewRecorder()
	_, ok := rec.Last()
	assert.False(t, ok)

	ctx := context.Background()
	rec.Notify(ctx, notify.Info("uno"))
	rec.Notify(ctx, notify.Success("dos"))

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "dos", last.Message)
	assert.Len(t, rec.Drain(), 2)
	assert.Empty(t, rec.Toasts())
}

func TestBusNotifier_DeliversToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := pubsub.NewWatermillBridge(pubsub.WithBlockingPublish())
	ctx := context.Background()

	rec := notify.NewRecorder()
	require.NoError(t, notify.Subscribe(ctx, bus, rec))

	n := notify.NewBusNotifier(bus, func() string { return "u1" })
	n.Notify(ctx, notify.Success("¡Bienvenido de vuelta!"))
	n.Notify(ctx, notify.Warning("Debes iniciar sesión"))

	assert.Equal(t, []notify.Toast{
		notify.Success("¡Bienvenido de vuelta!"),
		notify.Warning("Debes iniciar sesión"),
	}, rec.Toasts())

	require.NoError(t, bus.Close())
}
