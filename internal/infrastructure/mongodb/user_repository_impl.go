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

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

// Create upserts on email with $setOnInsert so an existing user is left untouched.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": u.Email},
		bson.M{"$setOnInsert": u},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	if res.UpsertedCount == 0 {
		return false, nil
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return true, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]entity.User, error) {
	cur, err := r.coll.Find(ctx, userFilterDoc(f))
	if err != nil {
		return nil, err
	}
	users := make([]entity.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) RequestRole(ctx context.Context, email string, role entity.Role) (int64, int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"isRequest": true, "wannaBe": role}},
	)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// GrantRequestedRole runs as a single pipeline update so role and wannaBe never diverge.
func (r *UserRepository) GrantRequestedRole(ctx context.Context, email string) (entity.Role, error) {
	filter := bson.M{"email": email, "isRequest": true, "wannaBe": bson.M{"$exists": true}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "role", Value: "$wannaBe"}, {Key: "isRequest", Value: false}}}},
		{{Key: "$unset", Value: "wannaBe"}},
	}
	var u entity.User
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return u.Role, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func userFilterDoc(f repository.UserFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.IsRequest != nil {
		filter["isRequest"] = *f.IsRequest
	}
	return filter
}

var _ repository.UserRepository = (*UserRepository)(nil)
