// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"go.uber.org/zap"
)

// Pages provides the projects page data. *pagebuild.Builder implements it.
type Pages interface {
	Projects(ctx context.Context) (*pagebuild.ProjectsPage, error)
}

// Handler serves the projects listing.
type Handler struct {
	Pages Pages
	Log   *zap.Logger
}

// NewHandler constructs a projects Handler.
func NewHandler(pages Pages, logger *zap.Logger) *Handler {
	return &Handler{Pages: pages, Log: logger}
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServeProjects handles GET /projects.
//
// On success: 200 and { "projects":[…], "links":[…], … }.
// When the directory could not be listed: 503 and
//
//	{ "status":"error", "message":"Projects directory unavailable" }
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page, err := h.Pages.Projects(r.Context())
	if err != nil {
		h.Log.Error("projects page unavailable", zap.Error(err))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Status:  "error",
			Message: "Projects directory unavailable",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(page)
}
