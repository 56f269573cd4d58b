package api

import (
	"condominio/internal/auth"
	"condominio/internal/service"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type AuthHandler struct {
	issuer   *auth.TokenIssuer
	reservas *service.ReservationService
	logger   *zap.Logger
}

func NewAuthHandler(issuer *auth.TokenIssuer, reservas *service.ReservationService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, reservas: reservas, logger: logger}
}

// Login signs in one of the directory users by email alone.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, err, "Solicitud inválida")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respondMessage(w, http.StatusBadRequest, "Ingresa tu email")
		return
	}

	user, ok := auth.LookupUser(req.Email)
	if !ok {
		h.logger.Info("login rejected", zap.String("email", req.Email))
		respondMessage(w, http.StatusUnauthorized, auth.UnknownUserMessage())
		return
	}

	session, err := h.issuer.Issue(user)
	if err != nil {
		h.logger.Error("issuing token", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "No se pudo iniciar sesión")
		return
	}
	h.logger.Info("login", zap.Int("usuario_id", user.ID), zap.String("role", string(user.Role)))
	respondJSON(w, http.StatusOK, LoginResponse{Token: session.Token, Usuario: session})
}

// Logout revokes the token and discards the session's wizard.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	h.issuer.Revoke(sess)
	h.reservas.EndSession(sess)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, auth.SessionFrom(r.Context()))
}
