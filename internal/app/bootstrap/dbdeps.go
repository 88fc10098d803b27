// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/jefgalicia/jefsite/internal/app/store/builds"
	"github.com/jefgalicia/jefsite/internal/app/system/directory"
	"github.com/jefgalicia/jefsite/internal/app/system/pagebuild"
	"github.com/jefgalicia/jefsite/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Directory directory.Client
	Builds    *builds.Store
	Pages     *pagebuild.Builder
	Prewarm   *workers.Prewarm // nil when prewarm is disabled
}
