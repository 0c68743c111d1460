package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// DocumentRepository serves one schema-flexible collection.
type DocumentRepository struct {
	coll *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database, collection string) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(collection)}
}

func (r *DocumentRepository) Find(ctx context.Context, filter map[string]any, opts repository.FindOptions) ([]entity.Document, error) {
	cur, err := r.coll.Find(ctx, bson.M(filter), findOptions(opts))
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	docs := make([]entity.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, entity.Document(m))
	}
	return docs, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (entity.Document, error) {
	var m bson.M
	if err := r.coll.FindOne(ctx, bson.M{entity.IDField: id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entity.Document(m), nil
}

func (r *DocumentRepository) Insert(ctx context.Context, doc entity.Document) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (r *DocumentRepository) Increment(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{entity.IDField: id}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func findOptions(o repository.FindOptions) *options.FindOptions {
	opts := options.Find()
	if o.NewestFirst {
		opts.SetSort(bson.D{{Key: entity.IDField, Value: -1}})
	}
	if o.Limit > 0 {
		opts.SetLimit(o.Limit)
	}
	return opts
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
