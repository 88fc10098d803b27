// internal/domain/models/pagebuild.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page build outcomes.
const (
	BuildOK       = "ok"       // fresh data was produced
	BuildFallback = "fallback" // aggregation failed; empty collections were served
	BuildError    = "error"    // build failed and nothing was served
)

// PageBuild records one run of a page's data aggregation.
type PageBuild struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuildID   string             `bson:"build_id" json:"build_id"`
	Page      string             `bson:"page" json:"page"`
	Status    string             `bson:"status" json:"status"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	Users     int                `bson:"users" json:"users"`
	Groups    int                `bson:"groups" json:"groups"`
	Photos    int                `bson:"photos" json:"photos"`
	Projects  int                `bson:"projects" json:"projects"`
	Duration  int64              `bson:"duration_ms" json:"duration_ms"`
	StartedAt time.Time          `bson:"started_at" json:"started_at"`
}
