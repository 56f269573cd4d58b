package api

import (
	"condominio/internal/auth"
	apperr "condominio/internal/errors"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Auth
type LoginRequest struct {
	Email string `json:"email"`
}
type LoginResponse struct {
	Token   string        `json:"token"`
	Usuario *auth.Session `json:"usuario"`
}

// Reservation wizard
type ChooseSpaceRequest struct {
	Espacio string `json:"espacio"`
}
type ChooseSlotRequest struct {
	Inicio string `json:"inicio"`
}

// RefreshRequest optionally changes the searched range. An empty body
// retries the current one.
type RefreshRequest struct {
	Desde           string `json:"desde"`
	Hasta           string `json:"hasta"`
	DuracionMinutos int    `json:"duracion_minutos"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Message: msg})
}

// respondError answers with the status mapped from err and the text a user
// should see, or fallback when err carries none.
func respondError(w http.ResponseWriter, err error, fallback string) {
	respondMessage(w, apperr.StatusCode(err), apperr.UserMessage(err, fallback))
}

// decodeJSON reads the request body into v. allowEmpty accepts a missing body.
func decodeJSON(r *http.Request, v interface{}, allowEmpty bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return apperr.Validation("Solicitud inválida")
}
