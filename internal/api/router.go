package api

import (
	"condominio/internal/auth"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth      *AuthHandler
	Reservas  *ReservationHandler
	Gastos    *GastoHandler
	Pagos     *PagosHandler
	Dashboard *DashboardHandler
	UF        *UFHandler
	Stripe    *StripeWebhookHandler
}

// NewRouter registers the console routes. Everything under /api except
// login and the Stripe webhook requires a session.
func NewRouter(h Handlers, issuer *auth.TokenIssuer, loginLimiter *RateLimiter, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(AccessLog(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Public endpoints
	r.Handle("/api/auth/login", loginLimiter.Middleware(logger)(http.HandlerFunc(h.Auth.Login))).Methods("POST")
	r.HandleFunc("/api/pagos/webhook", h.Stripe.HandleWebhook).Methods("POST")

	// Session endpoints (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.SessionMiddleware(issuer))
	api.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")
	api.HandleFunc("/auth/me", h.Auth.Me).Methods("GET")

	api.HandleFunc("/dashboard", h.Dashboard.GetDashboard).Methods("GET")
	api.HandleFunc("/uf", h.UF.GetUF).Methods("GET")

	api.HandleFunc("/gastos", h.Gastos.ListGastos).Methods("GET")
	api.HandleFunc("/gastos", h.Gastos.CreateGasto).Methods("POST")
	api.HandleFunc("/gastos/{id:[0-9]+}", h.Gastos.UpdateGasto).Methods("PUT")
	api.HandleFunc("/gastos/{id:[0-9]+}", h.Gastos.DeleteGasto).Methods("DELETE")

	api.HandleFunc("/pagos", h.Pagos.GetResumen).Methods("GET")
	api.HandleFunc("/pagos/gastos-comunes/{id:[0-9]+}/checkout", h.Pagos.CreateCheckout).Methods("POST")

	api.HandleFunc("/reservas/espacios", h.Reservas.ListSpaces).Methods("GET")
	api.HandleFunc("/reservas/mis-reservas", h.Reservas.MyReservations).Methods("GET")
	api.HandleFunc("/reservas/{id:[0-9]+}", h.Reservas.CancelReservation).Methods("DELETE")
	api.HandleFunc("/reservas/wizard", h.Reservas.GetWizard).Methods("GET")
	api.HandleFunc("/reservas/wizard/espacio", h.Reservas.ChooseSpace).Methods("POST")
	api.HandleFunc("/reservas/wizard/disponibilidad/refresh", h.Reservas.RefreshAvailability).Methods("POST")
	api.HandleFunc("/reservas/wizard/slot", h.Reservas.ChooseSlot).Methods("POST")
	api.HandleFunc("/reservas/wizard/back", h.Reservas.Back).Methods("POST")
	api.HandleFunc("/reservas/wizard/confirmar", h.Reservas.Confirm).Methods("POST")

	return r
}

// WithMiddleware adds CORS for the browser console and panic recovery.
func WithMiddleware(next http.Handler, origins []string, logger *zap.Logger) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)
	return recovery(cors(next))
}
