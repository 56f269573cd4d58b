package api

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	apperr "condominio/internal/errors"
	"condominio/internal/service"
	"condominio/internal/utils"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	msgEspacios    = "No se pudieron cargar los espacios"
	msgMisReservas = "No se pudieron cargar tus reservas"
	msgCancelar    = "No se pudo cancelar la reserva"
)

type ReservationHandler struct {
	Service *service.ReservationService
	logger  *zap.Logger
}

// WizardResponse is the wizard view plus the message of a failed action.
type WizardResponse struct {
	service.WizardView
	Message string `json:"message,omitempty"`
}

func NewReservationHandler(svc *service.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, logger: logger}
}

func (h *ReservationHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("detalle") != "1" {
		respondJSON(w, http.StatusOK, h.Service.Spaces())
		return
	}
	details, err := h.Service.SpaceDetails(r.Context(), auth.SessionFrom(r.Context()))
	if err != nil {
		respondError(w, err, msgEspacios)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *ReservationHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.MyReservations(r.Context(), auth.SessionFrom(r.Context()))
	if err != nil {
		respondError(w, err, msgMisReservas)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Reserva inválida")
		return
	}
	if err := h.Service.CancelReservation(r.Context(), auth.SessionFrom(r.Context()), id); err != nil {
		respondError(w, err, msgCancelar)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, WizardResponse{WizardView: h.Service.Wizard(auth.SessionFrom(r.Context()))})
}

func (h *ReservationHandler) ChooseSpace(w http.ResponseWriter, r *http.Request) {
	var req ChooseSpaceRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.respondWizard(w, r, h.Service.Wizard(auth.SessionFrom(r.Context())), err)
		return
	}
	view, err := h.Service.ChooseSpace(r.Context(), auth.SessionFrom(r.Context()), req.Espacio)
	h.respondWizard(w, r, view, err)
}

func (h *ReservationHandler) RefreshAvailability(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	var req RefreshRequest
	if err := decodeJSON(r, &req, true); err != nil {
		h.respondWizard(w, r, h.Service.Wizard(sess), err)
		return
	}
	q, err := req.query()
	if err != nil {
		h.respondWizard(w, r, h.Service.Wizard(sess), err)
		return
	}
	view, err := h.Service.RefreshAvailability(r.Context(), sess, q)
	h.respondWizard(w, r, view, err)
}

func (h *ReservationHandler) ChooseSlot(w http.ResponseWriter, r *http.Request) {
	var req ChooseSlotRequest
	if err := decodeJSON(r, &req, false); err != nil {
		h.respondWizard(w, r, h.Service.Wizard(auth.SessionFrom(r.Context())), err)
		return
	}
	view, err := h.Service.ChooseSlot(r.Context(), auth.SessionFrom(r.Context()), req.Inicio)
	h.respondWizard(w, r, view, err)
}

func (h *ReservationHandler) Back(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Back(r.Context(), auth.SessionFrom(r.Context()))
	h.respondWizard(w, r, view, err)
}

func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Confirm(r.Context(), auth.SessionFrom(r.Context()))
	h.respondWizard(w, r, view, err)
}

// respondWizard always returns the view so the client can render the step it
// is on. A cancelled request gets no body: nobody is waiting for it.
func (h *ReservationHandler) respondWizard(w http.ResponseWriter, r *http.Request, view service.WizardView, err error) {
	if err == nil {
		respondJSON(w, http.StatusOK, WizardResponse{WizardView: view})
		return
	}
	if apperr.IsCanceled(err) && r.Context().Err() != nil {
		h.logger.Debug("wizard request cancelled", zap.String("path", r.URL.Path))
		return
	}
	fallback := view.Wizard.Error
	if fallback == "" && view.Disponibilidad != nil {
		fallback = view.Disponibilidad.Error
	}
	if fallback == "" {
		fallback = "No se pudo completar la acción"
	}
	respondJSON(w, apperr.StatusCode(err), WizardResponse{WizardView: view, Message: apperr.UserMessage(err, fallback)})
}

func (req RefreshRequest) query() (*entities.AvailabilityQuery, error) {
	if req.Desde == "" && req.Hasta == "" && req.DuracionMinutos == 0 {
		return nil, nil
	}
	if req.DuracionMinutos < 0 {
		return nil, apperr.Validation("Duración inválida")
	}
	q := &entities.AvailabilityQuery{DuracionMinutos: req.DuracionMinutos}
	if req.Desde != "" {
		t, err := utils.ParseTimestamp(req.Desde)
		if err != nil {
			return nil, apperr.Validation("Fecha de inicio inválida")
		}
		q.FechaInicio = &t
	}
	if req.Hasta != "" {
		t, err := utils.ParseTimestamp(req.Hasta)
		if err != nil {
			return nil, apperr.Validation("Fecha de término inválida")
		}
		q.FechaFin = &t
	}
	if q.FechaInicio != nil && q.FechaFin != nil && !q.FechaFin.After(*q.FechaInicio) {
		return nil, apperr.Validation("El rango de fechas es inválido")
	}
	return q, nil
}
