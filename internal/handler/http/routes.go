package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without a session: registration, credential fetch and login
	router.Group(func(r chi.Router) {
		r.Put("/v1/user", h.putUser)
		r.Get("/v1/user", h.getUser)
		r.Get("/v1/session", h.getSession)
		r.Get("/v1/version", h.getServerVersion)
	})

	// routes requiring a valid session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.sessionAuth)
		r.Delete("/v1/session", h.deleteSession)
		r.Get("/v1/content", h.listContent)
		r.Put("/v1/content/{name}", h.uploadContent)
		r.Get("/v1/content/{name}", h.downloadContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
