package repository

import (
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) *ReservationRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewReservationRepository(NewBackendClient(srv.URL+"/api/v1", 0))
}

func TestGetAvailabilityDefaults(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reservas/espacios/quincho/disponibilidad", r.URL.Path)
		assert.Equal(t, "60", r.URL.Query().Get("duracion_minutos"))
		assert.False(t, r.URL.Query().Has("fecha_inicio"))
		assert.False(t, r.URL.Query().Has("fecha_fin"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"espacio":"quincho","fecha_inicio":"2025-10-25T00:00:00","fecha_fin":"2025-11-24T23:59:59",
			"slots":[{"inicio":"2025-10-25T18:00:00","fin":"2025-10-25T19:00:00","disponible":true}]}`))
	})

	resp, err := repo.GetAvailability(context.Background(), "tok", entities.SpaceQuincho, entities.AvailabilityQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2025-10-25T18:00:00", resp.Slots[0].Inicio)
	assert.True(t, resp.Slots[0].Disponible)
}

func TestGetAvailabilityRange(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "90", r.URL.Query().Get("duracion_minutos"))
		assert.Equal(t, "2025-10-25T00:00:00", r.URL.Query().Get("fecha_inicio"))
		assert.Equal(t, "2025-10-27T00:00:00", r.URL.Query().Get("fecha_fin"))
		w.Write([]byte(`{"espacio":"multicancha","slots":[]}`))
	})

	desde := time.Date(2025, 10, 25, 0, 0, 0, 0, time.Local)
	hasta := time.Date(2025, 10, 27, 0, 0, 0, 0, time.Local)
	resp, err := repo.GetAvailability(context.Background(), "", entities.SpaceMulticancha, entities.AvailabilityQuery{
		DuracionMinutos: 90,
		FechaInicio:     &desde,
		FechaFin:        &hasta,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestCreateReservation(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/reservas/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("usuario_id"))

		var body entities.ReservationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, entities.SpaceQuincho, body.Espacio)
		assert.Equal(t, "2025-10-25T18:00:00", body.FechaHoraInicio)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":42,"espacio_comun_id":2,"usuario_id":5,"fecha_hora_inicio":"2025-10-25T18:00:00",
			"fecha_hora_fin":"2025-10-25T19:00:00","monto_pago":15000,"estado_pago":"pendiente","created_at":"2025-10-20T10:00:00"}`))
	})

	created, err := repo.CreateReservation(context.Background(), "tok", 5, entities.ReservationRequest{
		Espacio:         entities.SpaceQuincho,
		FechaHoraInicio: "2025-10-25T18:00:00",
		FechaHoraFin:    "2025-10-25T19:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "pendiente", created.EstadoPago)
}

func TestBackendErrorDetail(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"El espacio ya está reservado en ese horario"}`))
	})

	_, err := repo.CreateReservation(context.Background(), "", 5, entities.ReservationRequest{Espacio: entities.SpaceQuincho})
	require.Error(t, err)
	var httpErr *apperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.True(t, httpErr.Upstream)
	assert.Equal(t, "El espacio ya está reservado en ese horario", httpErr.Detail)
}

func TestBackendErrorNonStringDetail(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["query","usuario_id"],"msg":"field required"}]}`))
	})

	err := repo.CancelReservation(context.Background(), "", 5, 3)
	var httpErr *apperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Contains(t, httpErr.Detail, "field required")

	repo = newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	})
	_, err = repo.ListSpaces(context.Background(), "")
	require.ErrorAs(t, err, &httpErr)
	assert.Empty(t, httpErr.Detail)
	assert.Equal(t, "Bad Gateway", httpErr.Body)
}

func TestBackendErrorHTMLBody(t *testing.T) {
	const page = "<html><body><h1>502 Bad Gateway</h1>nginx</body></html>"
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(page))
	})

	_, err := repo.CreateReservation(context.Background(), "", 5, entities.ReservationRequest{Espacio: entities.SpaceQuincho})
	var httpErr *apperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	assert.Empty(t, httpErr.Detail)
	assert.Contains(t, err.Error(), "nginx")
	assert.Equal(t, "Error al crear la reserva", apperr.UserMessage(err, "Error al crear la reserva"))
}

func TestBackendCancellation(t *testing.T) {
	release := make(chan struct{})
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := repo.ListUserReservations(ctx, "", 5)
	require.Error(t, err)
	assert.True(t, apperr.IsCanceled(err))
}

func TestCancelReservation(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/reservas/7", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("usuario_id"))
		w.Write([]byte(`{"message":"Reserva cancelada exitosamente","reserva_id":7}`))
	})
	assert.NoError(t, repo.CancelReservation(context.Background(), "", 5, 7))
}

func TestGetDesglose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pagos/residente/5", r.URL.Path)
		w.Write([]byte(`{"viviendas":[3],"cargo_fijo_uf":1.5,
			"gastos_comunes":[{"id":1,"vivienda_id":3,"mes":10,"ano":2025,"monto_total":85000,"estado":"pendiente","vencimiento":null}],
			"multas":[{"id":2,"vivienda_id":3,"monto":20000,"descripcion":"Ruidos molestos","fecha_aplicada":"2025-10-02"}],
			"reservas":[]}`))
	}))
	defer srv.Close()

	repo := NewPaymentRepository(NewBackendClient(srv.URL+"/api/v1/", 0))
	d, err := repo.GetDesglose(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, d.Viviendas)
	assert.Equal(t, 1.5, d.CargoFijoUF)
	require.Len(t, d.GastosComunes, 1)
	assert.Nil(t, d.GastosComunes[0].Vencimiento)
	assert.Equal(t, "Ruidos molestos", d.Multas[0].Descripcion)
}
