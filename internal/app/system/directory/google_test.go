package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"go.uber.org/zap"
)

// fakeAdminAPI answers the handful of Admin SDK routes the client calls.
type fakeAdminAPI struct {
	t        *testing.T
	lastUser *http.Request
	lastMemb *http.Request
}

func (f *fakeAdminAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	q := r.URL.Query()

	switch {
	case strings.HasSuffix(path, "/admin/directory/v1/users"):
		f.lastUser = r
		if q.Get("pageToken") == "" {
			writeJSON(w, map[string]any{
				"users": []map[string]any{{
					"id":           "1",
					"primaryEmail": "ana@jef.gal",
					"creationTime": "2020-01-01T10:00:00.000Z",
					"name":         map[string]any{"givenName": "Ana", "familyName": "Pérez", "fullName": "Ana Pérez"},
				}},
				"nextPageToken": "page-2",
			})
			return
		}
		writeJSON(w, map[string]any{
			"users": []map[string]any{{
				"id":           "2",
				"primaryEmail": "brais@jef.gal",
				"suspended":    true,
				"creationTime": "2019-01-01T10:00:00.000Z",
			}},
		})

	case strings.Contains(path, "/photos/thumbnail"):
		if strings.Contains(path, "nophoto@jef.gal") {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]any{"error": map[string]any{"code": 404, "message": "Resource Not Found: userKey"}})
			return
		}
		if strings.Contains(path, "broken@jef.gal") {
			w.WriteHeader(http.StatusInternalServerError)
			writeJSON(w, map[string]any{"error": map[string]any{"code": 500, "message": "backend error"}})
			return
		}
		writeJSON(w, map[string]any{
			"id":           "p1",
			"primaryEmail": "ana@jef.gal",
			"mimeType":     "image/jpeg",
			"photoData":    "aGVsbG8_",
			"width":        96,
			"height":       96,
		})

	case strings.HasSuffix(path, "/members"):
		f.lastMemb = r
		writeJSON(w, map[string]any{
			"members": []map[string]any{
				{"id": "1", "email": "ana@jef.gal", "role": "MANAGER", "type": "USER", "status": "ACTIVE"},
			},
		})

	case strings.HasSuffix(path, "/admin/directory/v1/groups"):
		if q.Get("domain") == "down.jef.gal" {
			w.WriteHeader(http.StatusServiceUnavailable)
			writeJSON(w, map[string]any{"error": map[string]any{"code": 503, "message": "unavailable"}})
			return
		}
		writeJSON(w, map[string]any{
			"groups": []map[string]any{
				{"id": "g1", "email": "core@teams.jef.gal", "name": "Core", "directMembersCount": "3"},
			},
		})

	default:
		f.t.Errorf("unexpected request %s %s", r.Method, path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func newTestGoogle(t *testing.T) (*directory.Google, *fakeAdminAPI) {
	t.Helper()
	api := &fakeAdminAPI{t: t}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	g, err := directory.NewGoogle(context.Background(), directory.GoogleConfig{
		Endpoint:   srv.URL + "/",
		HTTPClient: srv.Client(),
		PageSize:   1,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewGoogle failed: %v", err)
	}
	return g, api
}

func TestGoogle_ListUsers_WalksAllPages(t *testing.T) {
	g, api := newTestGoogle(t)

	users, err := g.ListUsers(context.Background(), "jef.gal", directory.OrderByGivenName, false)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users across pages, got %d", len(users))
	}
	if users[0].PrimaryEmail != "ana@jef.gal" || users[0].Name.FullName != "Ana Pérez" {
		t.Errorf("unexpected first user: %+v", users[0])
	}
	want := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
	if !users[0].CreationTime.Equal(want) {
		t.Errorf("creation time: got %v, want %v", users[0].CreationTime, want)
	}
	if !users[1].Suspended {
		t.Error("expected second user to be suspended")
	}

	q := api.lastUser.URL.Query()
	if q.Get("domain") != "jef.gal" {
		t.Errorf("domain: got %q", q.Get("domain"))
	}
	if q.Get("orderBy") != "givenName" {
		t.Errorf("orderBy: got %q", q.Get("orderBy"))
	}
	if q.Get("showDeleted") != "false" {
		t.Errorf("showDeleted: got %q", q.Get("showDeleted"))
	}
	if q.Get("maxResults") != "1" {
		t.Errorf("maxResults: got %q", q.Get("maxResults"))
	}
}

func TestGoogle_GetUserPhoto(t *testing.T) {
	g, _ := newTestGoogle(t)
	ctx := context.Background()

	p, err := g.GetUserPhoto(ctx, "ana@jef.gal")
	if err != nil {
		t.Fatalf("GetUserPhoto failed: %v", err)
	}
	if p.PrimaryEmail != "ana@jef.gal" || p.MimeType != "image/jpeg" || p.Width != 96 {
		t.Errorf("unexpected photo: %+v", p)
	}

	if _, err := g.GetUserPhoto(ctx, "nophoto@jef.gal"); !errors.Is(err, directory.ErrNoPhoto) {
		t.Errorf("expected ErrNoPhoto, got %v", err)
	}

	_, err = g.GetUserPhoto(ctx, "broken@jef.gal")
	if err == nil || errors.Is(err, directory.ErrNoPhoto) {
		t.Errorf("expected a non-ErrNoPhoto error, got %v", err)
	}
}

func TestGoogle_ListGroups(t *testing.T) {
	g, _ := newTestGoogle(t)

	groups, err := g.ListGroups(context.Background(), "teams.jef.gal")
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != "g1" || groups[0].Name != "Core" {
		t.Errorf("unexpected groups: %+v", groups)
	}
	if groups[0].DirectMembersCount != 3 {
		t.Errorf("direct members count: got %d, want 3", groups[0].DirectMembersCount)
	}
}

func TestGoogle_ListGroups_Error(t *testing.T) {
	g, _ := newTestGoogle(t)

	_, err := g.ListGroups(context.Background(), "down.jef.gal")
	if err == nil {
		t.Fatal("expected error for unavailable domain")
	}
	if !strings.Contains(err.Error(), "list groups of down.jef.gal") {
		t.Errorf("error should name the operation, got %v", err)
	}
}

func TestGoogle_ListGroupMembers_IncludeDerived(t *testing.T) {
	g, api := newTestGoogle(t)

	members, err := g.ListGroupMembers(context.Background(), "core@teams.jef.gal", true)
	if err != nil {
		t.Fatalf("ListGroupMembers failed: %v", err)
	}
	if !members.Has("ana@jef.gal") {
		t.Errorf("expected ana@jef.gal in members, got %+v", members)
	}
	if got := api.lastMemb.URL.Query().Get("includeDerivedMembership"); got != "true" {
		t.Errorf("includeDerivedMembership: got %q, want %q", got, "true")
	}
}

func TestValidOrderBy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"givenName", true},
		{"familyName", true},
		{"email", true},
		{"GIVEN_NAME", false},
	}
	for _, tt := range tests {
		if got := directory.ValidOrderBy(tt.in); got != tt.want {
			t.Errorf("ValidOrderBy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
