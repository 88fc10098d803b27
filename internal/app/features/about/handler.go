// internal/app/features/about/handler.go
package about

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jefgalicia/jefsite/internal/app/store/queries/memberdirectory"
	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"go.uber.org/zap"
)

// Pages provides the about page data. *pagebuild.Builder implements it.
type Pages interface {
	About(ctx context.Context) (*pagebuild.AboutPage, error)
}

// Handler serves the members directory page data.
type Handler struct {
	Pages Pages
	Log   *zap.Logger
}

// NewHandler constructs an about Handler.
func NewHandler(pages Pages, logger *zap.Logger) *Handler {
	return &Handler{Pages: pages, Log: logger}
}

type membersResponse struct {
	Members []memberdirectory.MemberRow `json:"members"`
	Status  memberdirectory.Status      `json:"status"`
}

// ServeAbout handles GET /about.
//
// It always answers 200 with the page props:
//
//	{ "users":[…], "photos":[…], "groups":[…], "memberships":{…}, "status":"ok", "revalidate":14400, … }
//
// When the directory could not be read the collections are empty, status is
// "fallback" and revalidate is omitted.
func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	page, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ServeMembers handles GET /about/members with the derived member rows:
// active users, oldest account first, each with photo and team tagline.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.load(w, r)
	if !ok {
		return
	}
	members := page.Members
	if members == nil {
		members = []memberdirectory.MemberRow{}
	}
	writeJSON(w, http.StatusOK, membersResponse{Members: members, Status: page.Status})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*pagebuild.AboutPage, bool) {
	page, err := h.Pages.About(r.Context())
	if err != nil {
		h.Log.Error("about page unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"error":  "members directory unavailable",
		})
		return nil, false
	}
	if page.Status == memberdirectory.StatusFallback {
		w.Header().Set("Cache-Control", "no-store")
	}
	return page, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
