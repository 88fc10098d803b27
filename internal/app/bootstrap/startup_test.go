package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"github.com/jefgalicia/jefsite/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:                   "mongodb://localhost:27017",
		MongoDatabase:              "jefsite",
		DirectoryDomain:            testutil.Domain,
		DirectoryTeamsDomain:       testutil.TeamsDomain,
		DirectoryProjectsDomain:    testutil.ProjectsDomain,
		DirectoryOrderBy:           "givenName",
		DirectoryIncludeDerived:    true,
		DirectoryPageSize:          200,
		DirectoryPhotoConcurrency:  8,
		DirectoryMemberConcurrency: 8,
		DirectoryTimeout:           30 * time.Second,
		MemberRevalidate:           4 * time.Hour,
		MemberTagSuffix:            " Manager",
		MemberTagSeparator:         ", ",
		ProjectsBasePath:           "/projects",
	}
}

func TestValidateDirectory_Valid(t *testing.T) {
	if err := validateDirectory(validAppConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateDirectory_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		want   string
	}{
		{"missing domain", func(c *AppConfig) { c.DirectoryDomain = "" }, "directory_domain must be set"},
		{"blank teams domain", func(c *AppConfig) { c.DirectoryTeamsDomain = "  " }, "directory_teams_domain must be set"},
		{"missing projects domain", func(c *AppConfig) { c.DirectoryProjectsDomain = "" }, "directory_projects_domain must be set"},
		{"bad order", func(c *AppConfig) { c.DirectoryOrderBy = "GIVEN_NAME" }, "directory_order_by"},
		{"negative concurrency", func(c *AppConfig) { c.DirectoryPhotoConcurrency = -1 }, "concurrency"},
		{"zero timeout", func(c *AppConfig) { c.DirectoryTimeout = 0 }, "directory_timeout"},
		{"negative revalidate", func(c *AppConfig) { c.MemberRevalidate = -time.Second }, "revalidation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := validateDirectory(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPagesConfig(t *testing.T) {
	cfg := validAppConfig()
	cfg.ProjectRevalidate = time.Hour
	pc := cfg.PagesConfig()

	if pc.Members.Domain != testutil.Domain || pc.Members.TeamsDomain != testutil.TeamsDomain {
		t.Errorf("member domains: got %q / %q", pc.Members.Domain, pc.Members.TeamsDomain)
	}
	if !pc.Members.IncludeDerived || pc.Members.OrderBy != "givenName" {
		t.Errorf("member query: got %+v", pc.Members)
	}
	if pc.Projects.Domain != testutil.ProjectsDomain {
		t.Errorf("projects domain: got %q", pc.Projects.Domain)
	}
	if pc.Tags.Suffix != " Manager" || pc.Tags.Separator != ", " {
		t.Errorf("tags: got %+v", pc.Tags)
	}
	if pc.MemberRevalidate != 4*time.Hour || pc.ProjectRevalidate != time.Hour {
		t.Errorf("revalidate: got %v / %v", pc.MemberRevalidate, pc.ProjectRevalidate)
	}
}

func TestBuildHandler_MountsPages(t *testing.T) {
	cfg := validAppConfig()
	deps := DBDeps{
		Directory: testutil.BasicDirectory(),
	}
	deps.Pages = pagebuild.New(deps.Directory, cfg.PagesConfig(), nil, testLogger())

	h, err := BuildHandler(nil, cfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/about", http.StatusOK, `"status":"ok"`},
		{"/about/members", http.StatusOK, `"tagline":"Core Manager"`},
		{"/projects", http.StatusOK, `"href":"/projects/erasmus@projects.jef.gal"`},
		{"/metrics", http.StatusOK, "jefsite_page_builds_total"},
		{"/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
		if rec.Code != tt.status {
			t.Errorf("%s: status %d, want %d", tt.path, rec.Code, tt.status)
			continue
		}
		if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
			t.Errorf("%s: body does not contain %q", tt.path, tt.body)
		}
	}
}

func TestStartup_ConfiguresDirectoryTimeout(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	cfg := validAppConfig()
	cfg.DirectoryTimeout = 45 * time.Second
	if err := Startup(t.Context(), nil, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	if got := timeouts.Directory(); got != 45*time.Second {
		t.Errorf("directory timeout: got %v, want 45s", got)
	}
}
