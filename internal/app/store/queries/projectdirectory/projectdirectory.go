// Package projectdirectory lists the organization's projects, which live as
// groups under their own directory domain.
package projectdirectory

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/app/system/htmlsanitize"
	"github.com/jefgalicia/jefsite/internal/domain/models"
)

// Config scopes the listing.
type Config struct {
	Domain string // e.g. projects.jef.gal
}

// List returns every project group in directory order. Errors are returned
// to the caller; there is no fallback listing.
func List(ctx context.Context, client directory.Client, cfg Config) ([]models.Group, error) {
	groups, err := client.ListGroups(ctx, cfg.Domain)
	if err != nil {
		return nil, fmt.Errorf("project directory: %w", err)
	}
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		g.Name = htmlsanitize.Text(g.Name)
		g.Description = htmlsanitize.Text(g.Description)
		out = append(out, g)
	}
	return out, nil
}

// Link is one entry of the rendered project list.
type Link struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}

// Links pairs each project with its page, basePath + "/" + group email,
// keeping the listing order.
func Links(projects []models.Group, basePath string) []Link {
	base := strings.TrimRight(basePath, "/")
	out := make([]Link, 0, len(projects))
	for _, p := range projects {
		out = append(out, Link{
			ID:   p.ID,
			Name: p.Name,
			Href: base + "/" + url.PathEscape(p.Email),
		})
	}
	return out
}
