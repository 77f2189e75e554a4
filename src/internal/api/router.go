package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterOptions tunes the middleware stack of NewRouter.
type RouterOptions struct {
	// LocalOnly rejects clients outside loopback and private networks.
	LocalOnly bool
}

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	if opts.LocalOnly {
		r.Use(LocalOnly)
	}
	r.Use(CORS)
	r.Use(JSONContentType)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.CheckHealth)
		r.Get("/validate", h.ValidateJob)

		r.Get("/assets", h.GetAssets)
		r.Get("/assets/{asset}", h.GetAsset)

		r.Post("/structs/parse", h.ParseStruct)
		r.Post("/merge", h.Merge)
		r.Post("/commit", h.Commit)
	})

	return r
}
