// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It applies
// the configured directory deadline and starts the page prewarm worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Directory: appCfg.DirectoryTimeout})

	if deps.Prewarm != nil {
		deps.Prewarm.Start()
	}

	logger.Info("directory pages configured",
		zap.String("domain", appCfg.DirectoryDomain),
		zap.String("teams_domain", appCfg.DirectoryTeamsDomain),
		zap.String("projects_domain", appCfg.DirectoryProjectsDomain),
		zap.Duration("member_revalidate", appCfg.MemberRevalidate),
		zap.Duration("project_revalidate", appCfg.ProjectRevalidate),
		zap.Bool("prewarm", deps.Prewarm != nil))
	return nil
}
