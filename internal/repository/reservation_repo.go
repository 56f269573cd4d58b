package repository

import (
	"condominio/internal/entities"
	"condominio/internal/utils"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultDuracionMinutos = 60

type ReservationRepository struct {
	client *BackendClient
}

func NewReservationRepository(client *BackendClient) *ReservationRepository {
	return &ReservationRepository{client: client}
}

// ListSpaces returns the backend's space records with pricing.
func (r *ReservationRepository) ListSpaces(ctx context.Context, token string) ([]entities.EspacioComun, error) {
	var espacios []entities.EspacioComun
	err := r.client.do(ctx, backendCall{
		method:  http.MethodGet,
		path:    "/reservas/espacios",
		token:   token,
		failMsg: "Error al obtener espacios",
	}, &espacios)
	if err != nil {
		return nil, err
	}
	return espacios, nil
}

// GetAvailability fetches the slots of one space. The range is sent only when
// the query carries it; otherwise the backend picks the upcoming days.
func (r *ReservationRepository) GetAvailability(ctx context.Context, token string, espacio entities.SpaceID, q entities.AvailabilityQuery) (*entities.AvailabilityResponse, error) {
	duracion := q.DuracionMinutos
	if duracion <= 0 {
		duracion = DefaultDuracionMinutos
	}
	params := url.Values{}
	params.Set("duracion_minutos", strconv.Itoa(duracion))
	if q.FechaInicio != nil {
		params.Set("fecha_inicio", utils.FormatLocalISO(*q.FechaInicio))
	}
	if q.FechaFin != nil {
		params.Set("fecha_fin", utils.FormatLocalISO(*q.FechaFin))
	}

	var resp entities.AvailabilityResponse
	err := r.client.do(ctx, backendCall{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/reservas/espacios/%s/disponibilidad", url.PathEscape(string(espacio))),
		query:   params,
		token:   token,
		failMsg: "Error al obtener disponibilidad",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, token string, usuarioID int, req entities.ReservationRequest) (*entities.Reservation, error) {
	params := url.Values{}
	params.Set("usuario_id", strconv.Itoa(usuarioID))

	var created entities.Reservation
	err := r.client.do(ctx, backendCall{
		method:  http.MethodPost,
		path:    "/reservas/",
		query:   params,
		token:   token,
		body:    req,
		failMsg: "Error al crear reserva",
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ReservationRepository) ListUserReservations(ctx context.Context, token string, usuarioID int) ([]entities.ReservationListItem, error) {
	var items []entities.ReservationListItem
	err := r.client.do(ctx, backendCall{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/reservas/usuario/%d", usuarioID),
		token:   token,
		failMsg: "Error al obtener reservas",
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ReservationRepository) CancelReservation(ctx context.Context, token string, usuarioID, reservaID int) error {
	params := url.Values{}
	params.Set("usuario_id", strconv.Itoa(usuarioID))
	return r.client.do(ctx, backendCall{
		method:  http.MethodDelete,
		path:    fmt.Sprintf("/reservas/%d", reservaID),
		query:   params,
		token:   token,
		failMsg: "Error al cancelar reserva",
	}, nil)
}
