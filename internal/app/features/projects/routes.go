// internal/app/features/projects/routes.go
package projects

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /projects.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeProjects)
	return r
}
