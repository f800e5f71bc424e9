package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Service) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.AuthHandler)
	return r
}
