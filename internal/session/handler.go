package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"medtimer/internal/domain/medicines"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el perfil de la sesión: el nombre a mostrar.
// Es la "pantalla de bienvenida" del producto: un nombre, sin auth
// (la autenticación está explícitamente fuera de alcance).
func RegisterRoutes(r chi.Router, s *Session) {
	r.Get("/me", meHandler(s))
	r.Put("/me", putMeHandler(s))
}

type meResponse struct {
	Name string `json:"name"`
}

type putMeRequest struct {
	Name string `json:"name"`
}

func meHandler(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, meResponse{Name: s.UserName()})
	}
}

func putMeHandler(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req putMeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := s.SetUserName(r.Context(), req.Name); err != nil {
			if errors.Is(err, medicines.ErrInvalidInput) {
				http.Error(w, "name can't be empty", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, meResponse{Name: s.UserName()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
