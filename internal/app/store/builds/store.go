// internal/app/store/builds/store.go
package builds

import (
	"context"
	"errors"
	"time"

	"github.com/jefgalicia/jefsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Retention is how long build records are kept before the TTL index
// removes them.
const Retention = 30 * 24 * time.Hour

// Store manages page build records.
type Store struct {
	c *mongo.Collection
}

// New creates a new builds Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("page_builds")}
}

// EnsureIndexes creates the query and retention indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Recent builds of one page
		{
			Keys: bson.D{
				{Key: "page", Value: 1},
				{Key: "started_at", Value: -1},
			},
		},
		// Last successful build of one page
		{
			Keys: bson.D{
				{Key: "page", Value: 1},
				{Key: "status", Value: 1},
				{Key: "started_at", Value: -1},
			},
		},
		// Retention
		{
			Keys:    bson.D{{Key: "started_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(Retention / time.Second)),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Log records a page build.
func (s *Store) Log(ctx context.Context, b models.PageBuild) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, b)
	return err
}

// Recent returns the most recent builds, newest first. An empty page returns
// builds of every page.
func (s *Store) Recent(ctx context.Context, page string, limit int64) ([]models.PageBuild, error) {
	query := bson.M{}
	if page != "" {
		query["page"] = page
	}
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.PageBuild{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LastSuccess returns the newest ok build of page, or nil when there is none.
func (s *Store) LastSuccess(ctx context.Context, page string) (*models.PageBuild, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})

	var b models.PageBuild
	err := s.c.FindOne(ctx, bson.M{"page": page, "status": models.BuildOK}, opts).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
