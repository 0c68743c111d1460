package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
)

// TaskRepository stores task records. Every id-based call is scoped by owner.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.TaskRecord) error
	ListByOwner(ctx context.Context, owner string) ([]entity.TaskRecord, error)
	// Update applies changes to the record matching (id, owner) and returns ErrNotFound if none matches.
	Update(ctx context.Context, id primitive.ObjectID, owner string, changes entity.TaskChanges) error
	Delete(ctx context.Context, id primitive.ObjectID, owner string) error
}
