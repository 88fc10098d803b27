// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/jefgalicia/jefsite/internal/app/store/queries/memberdirectory"
	"github.com/jefgalicia/jefsite/internal/app/store/queries/projectdirectory"
	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles the
// framework-level settings (ports, TLS, logging, CORS, body limits).
type AppConfig struct {
	// MongoDB connection configuration (page build log)
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Directory service
	DirectoryDomain            string // users, e.g. jef.gal
	DirectoryTeamsDomain       string // team groups, e.g. teams.jef.gal
	DirectoryProjectsDomain    string // project groups, e.g. projects.jef.gal
	DirectoryOrderBy           string
	DirectoryShowDeleted       bool
	DirectoryIncludeDerived    bool
	DirectoryCredentialsFile   string // service account key; blank uses application default credentials
	DirectoryAdminSubject      string // impersonated admin for domain-wide delegation
	DirectoryPageSize          int64
	DirectoryEndpoint          string
	DirectoryPhotoConcurrency  int
	DirectoryMemberConcurrency int
	DirectoryTimeout           time.Duration

	// Pages
	MemberRevalidate   time.Duration
	ProjectRevalidate  time.Duration // 0 keeps the first build until restart
	MemberTagSuffix    string
	MemberTagSeparator string
	ProjectsBasePath   string

	// Background warm-up
	Prewarm         bool
	PrewarmInterval time.Duration
}

// GoogleConfig returns the directory client settings.
func (c AppConfig) GoogleConfig() directory.GoogleConfig {
	return directory.GoogleConfig{
		CredentialsFile: c.DirectoryCredentialsFile,
		AdminSubject:    c.DirectoryAdminSubject,
		PageSize:        c.DirectoryPageSize,
		Endpoint:        c.DirectoryEndpoint,
	}
}

// PagesConfig returns the page build settings.
func (c AppConfig) PagesConfig() pagebuild.Config {
	return pagebuild.Config{
		Members: memberdirectory.Config{
			Domain:            c.DirectoryDomain,
			TeamsDomain:       c.DirectoryTeamsDomain,
			OrderBy:           c.DirectoryOrderBy,
			ShowDeleted:       c.DirectoryShowDeleted,
			IncludeDerived:    c.DirectoryIncludeDerived,
			PhotoConcurrency:  c.DirectoryPhotoConcurrency,
			MemberConcurrency: c.DirectoryMemberConcurrency,
		},
		Projects: projectdirectory.Config{Domain: c.DirectoryProjectsDomain},
		Tags: memberdirectory.TagFormat{
			Suffix:    c.MemberTagSuffix,
			Separator: c.MemberTagSeparator,
		},
		ProjectsBasePath:  c.ProjectsBasePath,
		MemberRevalidate:  c.MemberRevalidate,
		ProjectRevalidate: c.ProjectRevalidate,
	}
}
