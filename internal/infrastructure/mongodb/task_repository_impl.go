package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(TaskCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.TaskRecord) error {
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner string) ([]entity.TaskRecord, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	tasks := make([]entity.TaskRecord, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, owner string, changes entity.TaskChanges) error {
	filter := ownedTaskFilter(id, owner)
	// MongoDB rejects an empty $set, so a no-op update only checks ownership.
	if changes.Empty() {
		n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
		return nil
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": changes})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID, owner string) error {
	res, err := r.coll.DeleteOne(ctx, ownedTaskFilter(id, owner))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ownedTaskFilter(id primitive.ObjectID, owner string) bson.M {
	return bson.M{"_id": id, "userId": owner}
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
