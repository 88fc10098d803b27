// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/jefgalicia/jefsite/internal/app/store/builds"
	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"github.com/jefgalicia/jefsite/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects MongoDB, builds the directory client and wires the page
// builder on top of both.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	// The token source keeps this context for refreshes, so it must not end
	// with startup.
	dir, err := directory.NewGoogle(context.WithoutCancel(ctx), appCfg.GoogleConfig(), logger)
	if err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("directory client init failed", zap.Error(err))
		return DBDeps{}, err
	}

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Directory:     dir,
		Builds:        builds.New(db),
	}
	deps.Pages = pagebuild.New(deps.Directory, appCfg.PagesConfig(), deps.Builds, logger)
	if appCfg.Prewarm {
		deps.Prewarm = workers.NewPrewarm(deps.Pages, logger, appCfg.PrewarmInterval)
	}
	return deps, nil
}

// EnsureSchema sets up indexes or schema as needed.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), logger, "ensure indexes")
	defer cancel()

	if err := deps.Builds.EnsureIndexes(ctx); err != nil {
		logger.Error("page build indexes failed", zap.Error(err))
		return fmt.Errorf("ensure page build indexes: %w", err)
	}
	return nil
}
