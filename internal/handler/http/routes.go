package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.metrics.middleware, withGZip)

	router.Get("/api/ping", h.ping)
	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", h.metrics.handler())

	router.Route("/api/records", func(r chi.Router) {
		r.Get("/", h.listRecords)
		r.Post("/", h.createRecord)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getRecord)
			r.Put("/", h.updateRecord)
			r.Delete("/", h.deleteRecord)

			r.Get("/components", h.listComponents)
			r.Post("/components", h.addComponent)
			r.Delete("/components/{name}", h.removeComponent)
		})
	})

	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
