package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// SessionMiddleware requires a valid bearer token and stores the resulting
// session in the request context.
func SessionMiddleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Sesión requerida")
				return
			}
			session, err := issuer.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				msg := "Sesión inválida"
				if errors.Is(err, ErrInvalidToken) {
					msg = ErrInvalidToken.Error()
				}
				unauthorized(w, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
