package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(Validation("falta espacio")))
	assert.Equal(t, http.StatusConflict, StatusCode(NewUpstreamError(409, "Error al crear reserva", "ocupado")))
	assert.Equal(t, http.StatusBadGateway, StatusCode(NewUpstreamError(500, "Error al crear reserva", "")))
	assert.Equal(t, http.StatusForbidden, StatusCode(fmt.Errorf("wrapped: %w", ErrForbidden("no"))))
	assert.Equal(t, http.StatusBadGateway, StatusCode(NewUpstreamError(401, "Error al obtener reservas", "Token inválido")))
	assert.Equal(t, http.StatusBadGateway, StatusCode(NewUpstreamError(403, "Error al obtener reservas", "")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(fmt.Errorf("boom")))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(fmt.Errorf("fetch: %w", context.Canceled)))
	assert.False(t, IsCanceled(context.DeadlineExceeded))
	assert.False(t, IsCanceled(Validation("x")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "El espacio ya está reservado", UserMessage(
		NewUpstreamError(409, "Error al crear reserva", "El espacio ya está reservado"), "Error al crear la reserva"))
	assert.Equal(t, "Error al crear la reserva", UserMessage(
		NewUpstreamError(500, "Error al crear reserva", ""), "Error al crear la reserva"))
	assert.Equal(t, "Error al crear la reserva", UserMessage(
		NewUpstreamError(502, "Error al crear reserva", "").WithBody("<html>nginx</html>"), "Error al crear la reserva"))
	assert.Equal(t, "Faltan datos de la reserva", UserMessage(Validation("Faltan datos de la reserva"), "otro"))
	assert.Equal(t, "otro", UserMessage(fmt.Errorf("dial tcp: refused"), "otro"))
}
