// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for jefsite.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, directory_domain, etc.
//   - Environment variables: JEFSITE_MONGO_URI, JEFSITE_DIRECTORY_DOMAIN, etc.
//   - Command-line flags: --mongo_uri, --directory_domain, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "jefsite", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size (default: 20)"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size (default: 0)"},

	// Directory service
	{Name: "directory_domain", Default: "jef.gal", Desc: "Organizational domain whose users are listed"},
	{Name: "directory_teams_domain", Default: "teams.jef.gal", Desc: "Domain holding the team groups"},
	{Name: "directory_projects_domain", Default: "projects.jef.gal", Desc: "Domain holding the project groups"},
	{Name: "directory_order_by", Default: directory.OrderByGivenName, Desc: "User ordering: givenName, familyName or email"},
	{Name: "directory_show_deleted", Default: false, Desc: "Include deleted users in the listing"},
	{Name: "directory_include_derived", Default: true, Desc: "Include members inherited through nested groups"},
	{Name: "directory_credentials_file", Default: "", Desc: "Service account JSON key file (blank uses application default credentials)"},
	{Name: "directory_admin_subject", Default: "", Desc: "Admin user impersonated through domain-wide delegation"},
	{Name: "directory_page_size", Default: 200, Desc: "Page size for directory list calls"},
	{Name: "directory_endpoint", Default: "", Desc: "Override the Admin SDK endpoint (blank for Google)"},
	{Name: "directory_photo_concurrency", Default: 8, Desc: "Parallel photo fetches per build (0 = unbounded)"},
	{Name: "directory_member_concurrency", Default: 8, Desc: "Parallel membership fetches per build (0 = unbounded)"},
	{Name: "directory_timeout", Default: "30s", Desc: "Deadline for one page build against the directory"},

	// Pages
	{Name: "member_revalidate", Default: "4h", Desc: "How long the members page is served before it is rebuilt"},
	{Name: "project_revalidate", Default: "0", Desc: "How long the projects page is served before it is rebuilt (0 = until restart)"},
	{Name: "member_tag_suffix", Default: " Manager", Desc: "Appended to each team name in a member's tagline"},
	{Name: "member_tag_separator", Default: ", ", Desc: "Separates team entries in a member's tagline"},
	{Name: "projects_base_path", Default: "/projects", Desc: "Path prefix of project page links"},

	// Background warm-up
	{Name: "prewarm", Default: true, Desc: "Build the pages at startup instead of on the first request"},
	{Name: "prewarm_interval", Default: "0", Desc: "Rebuild the pages on this interval (0 = only at startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, JEFSITE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "JEFSITE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		// Directory service
		DirectoryDomain:            appValues.String("directory_domain"),
		DirectoryTeamsDomain:       appValues.String("directory_teams_domain"),
		DirectoryProjectsDomain:    appValues.String("directory_projects_domain"),
		DirectoryOrderBy:           appValues.String("directory_order_by"),
		DirectoryShowDeleted:       appValues.Bool("directory_show_deleted"),
		DirectoryIncludeDerived:    appValues.Bool("directory_include_derived"),
		DirectoryCredentialsFile:   appValues.String("directory_credentials_file"),
		DirectoryAdminSubject:      appValues.String("directory_admin_subject"),
		DirectoryPageSize:          int64(appValues.Int("directory_page_size")),
		DirectoryEndpoint:          appValues.String("directory_endpoint"),
		DirectoryPhotoConcurrency:  appValues.Int("directory_photo_concurrency"),
		DirectoryMemberConcurrency: appValues.Int("directory_member_concurrency"),
		DirectoryTimeout:           appValues.Duration("directory_timeout", 30*time.Second),

		// Pages
		MemberRevalidate:   appValues.Duration("member_revalidate", 4*time.Hour),
		ProjectRevalidate:  appValues.Duration("project_revalidate", 0),
		MemberTagSuffix:    appValues.String("member_tag_suffix"),
		MemberTagSeparator: appValues.String("member_tag_separator"),
		ProjectsBasePath:   appValues.String("projects_base_path"),

		// Background warm-up
		Prewarm:         appValues.Bool("prewarm"),
		PrewarmInterval: appValues.Duration("prewarm_interval", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// jefsite validates the MongoDB URI format and the directory layout to catch
// configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateDirectory(appCfg); err != nil {
		logger.Error("invalid directory configuration", zap.Error(err))
		return err
	}
	return nil
}

func validateDirectory(appCfg AppConfig) error {
	var errs []error
	domains := []struct{ key, value string }{
		{"directory_domain", appCfg.DirectoryDomain},
		{"directory_teams_domain", appCfg.DirectoryTeamsDomain},
		{"directory_projects_domain", appCfg.DirectoryProjectsDomain},
	}
	for _, d := range domains {
		if strings.TrimSpace(d.value) == "" {
			errs = append(errs, fmt.Errorf("%s must be set", d.key))
		}
	}
	if !directory.ValidOrderBy(appCfg.DirectoryOrderBy) {
		errs = append(errs, fmt.Errorf("directory_order_by %q is not one of givenName, familyName, email", appCfg.DirectoryOrderBy))
	}
	if appCfg.DirectoryPageSize < 0 {
		errs = append(errs, errors.New("directory_page_size must not be negative"))
	}
	if appCfg.DirectoryPhotoConcurrency < 0 || appCfg.DirectoryMemberConcurrency < 0 {
		errs = append(errs, errors.New("directory concurrency limits must not be negative"))
	}
	if appCfg.DirectoryTimeout <= 0 {
		errs = append(errs, errors.New("directory_timeout must be positive"))
	}
	if appCfg.MemberRevalidate < 0 || appCfg.ProjectRevalidate < 0 || appCfg.PrewarmInterval < 0 {
		errs = append(errs, errors.New("revalidation and prewarm intervals must not be negative"))
	}
	return errors.Join(errs...)
}
