package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Admin-ID"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sales", func(r chi.Router) {
			r.Post("/{id}/validate", h.ValidateSale)
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/cascade", h.RunCascade)
		})

		r.Route("/settlement", func(r chi.Router) {
			r.Get("/preview", h.PreviewBalances)
			r.Route("/batches", func(r chi.Router) {
				r.Post("/", h.GenerateBatch)
				r.Get("/{number}", h.GetBatch)
				r.Post("/{number}/process", h.ProcessBatch)
				r.Post("/{number}/cancel", h.CancelBatch)
			})
		})
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
