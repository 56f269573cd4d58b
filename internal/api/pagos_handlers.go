package api

import (
	"condominio/internal/auth"
	"condominio/internal/service"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type PagosHandler struct {
	Service *service.PaymentService
}

func NewPagosHandler(svc *service.PaymentService) *PagosHandler {
	return &PagosHandler{Service: svc}
}

func (h *PagosHandler) GetResumen(w http.ResponseWriter, r *http.Request) {
	resumen, err := h.Service.Resumen(r.Context(), auth.SessionFrom(r.Context()))
	if err != nil {
		respondError(w, err, "No se pudo cargar el detalle de pagos")
		return
	}
	respondJSON(w, http.StatusOK, resumen)
}

// CreateCheckout starts a Stripe checkout for one pending gasto común.
func (h *PagosHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		respondMessage(w, http.StatusBadRequest, "Gasto común inválido")
		return
	}
	resp, err := h.Service.Checkout(r.Context(), auth.SessionFrom(r.Context()), id)
	if err != nil {
		respondError(w, err, "No se pudo iniciar el pago")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

type DashboardHandler struct {
	Service *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Service.Build(r.Context(), auth.SessionFrom(r.Context())))
}

type UFHandler struct {
	Service service.UFProvider
}

func NewUFHandler(svc service.UFProvider) *UFHandler {
	return &UFHandler{Service: svc}
}

func (h *UFHandler) GetUF(w http.ResponseWriter, r *http.Request) {
	uf, err := h.Service.Current(r.Context())
	if err != nil {
		respondError(w, err, "No se pudo obtener el valor de la UF")
		return
	}
	respondJSON(w, http.StatusOK, uf)
}
