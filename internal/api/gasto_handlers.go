package api

import (
	"condominio/internal/auth"
	"condominio/internal/entities"
	"condominio/internal/service"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

type GastoHandler struct {
	Service *service.GastoService
}

func NewGastoHandler(svc *service.GastoService) *GastoHandler {
	return &GastoHandler{Service: svc}
}

func (h *GastoHandler) ListGastos(w http.ResponseWriter, r *http.Request) {
	estado := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("estado")))
	resumen, err := h.Service.List(r.Context(), estado)
	if err != nil {
		respondError(w, err, "No se pudieron cargar los gastos")
		return
	}
	respondJSON(w, http.StatusOK, resumen)
}

func (h *GastoHandler) CreateGasto(w http.ResponseWriter, r *http.Request) {
	var in entities.GastoInput
	if err := decodeJSON(r, &in, false); err != nil {
		respondError(w, err, "Solicitud inválida")
		return
	}
	g, err := h.Service.Create(r.Context(), auth.SessionFrom(r.Context()), in)
	if err != nil {
		respondError(w, err, "No se pudo crear el gasto")
		return
	}
	respondJSON(w, http.StatusCreated, g)
}

func (h *GastoHandler) UpdateGasto(w http.ResponseWriter, r *http.Request) {
	id, ok := gastoID(w, r)
	if !ok {
		return
	}
	var in entities.GastoInput
	if err := decodeJSON(r, &in, false); err != nil {
		respondError(w, err, "Solicitud inválida")
		return
	}
	g, err := h.Service.Update(r.Context(), auth.SessionFrom(r.Context()), id, in)
	if err != nil {
		respondError(w, err, "No se pudo actualizar el gasto")
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (h *GastoHandler) DeleteGasto(w http.ResponseWriter, r *http.Request) {
	id, ok := gastoID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), auth.SessionFrom(r.Context()), id); err != nil {
		respondError(w, err, "No se pudo eliminar el gasto")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func gastoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respondMessage(w, http.StatusBadRequest, "Gasto inválido")
		return 0, false
	}
	return id, true
}
