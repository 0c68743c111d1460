package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
)

// FindOptions tunes a collection scan.
type FindOptions struct {
	NewestFirst bool
	Limit       int64
}

// DocumentRepository is the generic collection contract shared by videos,
// forum posts, trainers, success stories and products.
// Filter keys are equality matches and may be dotted paths.
type DocumentRepository interface {
	Find(ctx context.Context, filter map[string]any, opts FindOptions) ([]entity.Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (entity.Document, error)
	Insert(ctx context.Context, doc entity.Document) (primitive.ObjectID, error)
	// Increment atomically adds delta to field; returns ErrNotFound if id is unknown.
	Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error
}
