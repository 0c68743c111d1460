package memory

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// DocumentRepository is an in-process stand-in for one document collection.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs []entity.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Find(_ context.Context, filter map[string]any, opts repository.FindOptions) ([]entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Document, 0)
	for i := range r.docs {
		d := r.docs[i]
		if opts.NewestFirst {
			d = r.docs[len(r.docs)-1-i]
		}
		if !matches(d, filter) {
			continue
		}
		out = append(out, d.Clone())
		if opts.Limit > 0 && int64(len(out)) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *DocumentRepository) FindByID(_ context.Context, id primitive.ObjectID) (entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.docs[i].Clone(), nil
	}
	return nil, repository.ErrNotFound
}

func (r *DocumentRepository) Insert(_ context.Context, doc entity.Document) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := doc.Clone()
	id, ok := d[entity.IDField].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		d[entity.IDField] = id
	}
	r.docs = append(r.docs, d)
	return id, nil
}

func (r *DocumentRepository) Increment(_ context.Context, id primitive.ObjectID, field string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	d := r.docs[i]
	switch v := d[field].(type) {
	case int:
		d[field] = v + delta
	case int32:
		d[field] = v + int32(delta)
	case int64:
		d[field] = v + int64(delta)
	case float64:
		d[field] = v + float64(delta)
	default:
		d[field] = delta
	}
	return nil
}

// indexOf must be called with the lock held.
func (r *DocumentRepository) indexOf(id primitive.ObjectID) int {
	for i, d := range r.docs {
		if d[entity.IDField] == id {
			return i
		}
	}
	return -1
}

func matches(d entity.Document, filter map[string]any) bool {
	for path, want := range filter {
		got, ok := d.Lookup(path)
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
