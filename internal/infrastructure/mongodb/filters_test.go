package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

func TestOwnedTaskFilterAlwaysCarriesOwner(t *testing.T) {
	id := primitive.NewObjectID()
	f := ownedTaskFilter(id, "a@x.com")
	assert.Equal(t, bson.M{"_id": id, "userId": "a@x.com"}, f)
}

func TestUserFilterDoc(t *testing.T) {
	assert.Empty(t, userFilterDoc(repository.UserFilter{}))

	yes := true
	f := userFilterDoc(repository.UserFilter{Role: entity.RoleSeller, IsRequest: &yes})
	assert.Equal(t, bson.M{"role": entity.RoleSeller, "isRequest": true}, f)
}

func TestFindOptions(t *testing.T) {
	opts := findOptions(repository.FindOptions{NewestFirst: true, Limit: 4})
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 4, *opts.Limit)
	assert.Equal(t, bson.D{{Key: "_id", Value: -1}}, opts.Sort)

	plain := findOptions(repository.FindOptions{})
	assert.Nil(t, plain.Limit)
	assert.Nil(t, plain.Sort)
}

func TestTaskChangesEncodeOnlySetFields(t *testing.T) {
	title := "Water crops"
	b, err := bson.Marshal(bson.M{"$set": entity.TaskChanges{Title: &title}})
	require.NoError(t, err)

	raw := bson.Raw(b)
	assert.Equal(t, "Water crops", raw.Lookup("$set", "title").StringValue())
	_, err = raw.LookupErr("$set", "description")
	assert.Error(t, err)
	_, err = raw.LookupErr("$set", "category")
	assert.Error(t, err)
}
