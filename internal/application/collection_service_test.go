package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

type fakeIndex struct {
	puts   map[string]entity.Document
	hits   []entity.Document
	putErr error
}

func (f *fakeIndex) Put(_ context.Context, id string, doc entity.Document) error {
	if f.puts == nil {
		f.puts = map[string]entity.Document{}
	}
	f.puts[id] = doc
	return f.putErr
}

func (f *fakeIndex) Query(_ context.Context, _ string, _ int) ([]entity.Document, error) {
	return f.hits, nil
}

func TestCollectionInsertDiscardsClientID(t *testing.T) {
	idx := &fakeIndex{}
	svc := NewCollectionService("forum", memory.NewDocumentRepository(), idx, helpers.NewNopLogger())
	ctx := context.Background()

	forged := primitive.NewObjectID()
	id, err := svc.Insert(ctx, entity.Document{"_id": forged, "title": "Soil tips"})
	require.NoError(t, err)
	assert.NotEqual(t, forged, id)

	doc, err := svc.Get(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Soil tips", doc["title"])
	assert.Contains(t, idx.puts, id.Hex())

	_, err = svc.Insert(ctx, entity.Document{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCollectionInsertSurvivesIndexFailure(t *testing.T) {
	svc := NewCollectionService("products", memory.NewDocumentRepository(), &fakeIndex{putErr: errors.New("down")}, helpers.NewNopLogger())
	_, err := svc.Insert(context.Background(), entity.Document{"name": "seeds"})
	assert.NoError(t, err)
}

func TestCollectionGetErrors(t *testing.T) {
	svc := NewCollectionService("trainers", memory.NewDocumentRepository(), nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestCollectionFindLatestAndIncrement(t *testing.T) {
	svc := NewCollectionService("forum", memory.NewDocumentRepository(), nil, nil)
	ctx := context.Background()

	var ids []primitive.ObjectID
	for _, title := range []string{"a", "b", "c"} {
		id, err := svc.Insert(ctx, entity.Document{"title": title, "upVote": 0, "seller": map[string]any{"email": "s@x.com"}})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	latest, err := svc.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "c", latest[0]["title"])

	bySeller, err := svc.Find(ctx, map[string]any{"seller.email": "s@x.com"})
	require.NoError(t, err)
	assert.Len(t, bySeller, 3)

	require.NoError(t, svc.Increment(ctx, ids[0].Hex(), "upVote", 1))
	doc, err := svc.Get(ctx, ids[0].Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc["upVote"])

	assert.ErrorIs(t, svc.Increment(ctx, "bad", "upVote", 1), ErrInvalidID)
	assert.ErrorIs(t, svc.Increment(ctx, primitive.NewObjectID().Hex(), "upVote", 1), ErrDocumentNotFound)
}

func TestCollectionSearch(t *testing.T) {
	ctx := context.Background()

	noIndex := NewCollectionService("forum", memory.NewDocumentRepository(), nil, nil)
	docs, err := noIndex.Search(ctx, "soil")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	idx := &fakeIndex{hits: []entity.Document{{"_id": "1", "title": "Soil tips"}}}
	withIndex := NewCollectionService("forum", memory.NewDocumentRepository(), idx, nil)
	docs, err = withIndex.Search(ctx, "soil")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = withIndex.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
