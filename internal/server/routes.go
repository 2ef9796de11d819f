package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"numberlookup/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler(s.getHealth))

		r.Route("/search", func(r chi.Router) {
			r.Get("/phone/{number}", handler(s.getPhoneLookup))
			r.Get("/people", handler(s.getPeopleSearch))
			r.Get("/address", handler(s.getAddressSearch))
			r.Get("/background", handler(s.getBackgroundCheck))
		})

		r.Post("/track/affiliate-click", handler(s.postAffiliateClick))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
