// internal/app/features/builds/handler.go
package builds

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"github.com/jefgalicia/jefsite/internal/app/system/paging"
	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"github.com/jefgalicia/jefsite/internal/domain/models"
	"go.uber.org/zap"
)

// Log reads page build records. *builds.Store implements it.
type Log interface {
	Recent(ctx context.Context, page string, limit int64) ([]models.PageBuild, error)
	LastSuccess(ctx context.Context, page string) (*models.PageBuild, error)
}

// Handler serves the page build log.
type Handler struct {
	Builds Log
	Log    *zap.Logger
}

// NewHandler constructs a builds Handler.
func NewHandler(log Log, logger *zap.Logger) *Handler {
	return &Handler{Builds: log, Log: logger}
}

type listResponse struct {
	Page        string             `json:"page"`
	Builds      []models.PageBuild `json:"builds"`
	LastSuccess *models.PageBuild  `json:"lastSuccess"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServeList handles GET /builds?page=about&limit=20.
//
// page defaults to "about" and must name a known page; limit follows
// paging.ParseLimit. Records are newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	page := query.Get(r, "page")
	if page == "" {
		page = pagebuild.PageAbout
	}
	if page != pagebuild.PageAbout && page != pagebuild.PageProjects {
		writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: "unknown page"})
		return
	}
	limit := paging.ParseLimit(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	recent, err := h.Builds.Recent(ctx, page, limit)
	if err != nil {
		h.Log.Error("list page builds failed", zap.String("page", page), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Status: "error", Message: "Build log unavailable"})
		return
	}
	last, err := h.Builds.LastSuccess(ctx, page)
	if err != nil {
		h.Log.Error("last successful page build lookup failed", zap.String("page", page), zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Status: "error", Message: "Build log unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Page: page, Builds: recent, LastSuccess: last})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
