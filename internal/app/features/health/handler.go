package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Warmer reports which pages hold a cached build. *pagebuild.Builder
// implements it.
type Warmer interface {
	Warm() map[string]bool
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Pages  Warmer
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, page
// builder and logger. pages may be nil.
func NewHandler(client *mongo.Client, pages Warmer, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Pages:  pages,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string          `json:"status"`
	Database string          `json:"database"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
	Pages    map[string]bool `json:"pages,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "pages":{"about":true,"projects":true} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
//
// Cold pages are informational; the directory is not contacted.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}
	if h.Pages != nil {
		resp.Pages = h.Pages.Warm()
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
