package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openmenuboard/menuboard/internal/models"
)

const bearerPrefix = "Bearer "

// Middleware enforces a valid bearer token on every request it wraps.
// Missing tokens get 401, invalid or expired ones 403.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			writeAuthError(w, models.ErrUnauthorized)
			return
		}
		if _, appErr := s.Verify(token); appErr != nil {
			writeAuthError(w, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromRequest extracts the bearer token from the Authorization header.
func TokenFromRequest(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimPrefix(h, bearerPrefix)
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, appErr *models.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(appErr)
}
