// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	aboutfeature "github.com/jefgalicia/jefsite/internal/app/features/about"
	buildsfeature "github.com/jefgalicia/jefsite/internal/app/features/builds"
	healthfeature "github.com/jefgalicia/jefsite/internal/app/features/health"
	projectsfeature "github.com/jefgalicia/jefsite/internal/app/features/projects"
	"github.com/jefgalicia/jefsite/internal/app/system/metrics"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. jefsite mounts the directory page data
// (about, projects), the page build log, health and Prometheus metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Pages, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", metrics.Handler())

	// Directory pages
	aboutHandler := aboutfeature.NewHandler(deps.Pages, logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	projectsHandler := projectsfeature.NewHandler(deps.Pages, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler))

	// Page build log
	buildsHandler := buildsfeature.NewHandler(deps.Builds, logger)
	r.Mount("/builds", buildsfeature.Routes(buildsHandler))

	return r, nil
}
