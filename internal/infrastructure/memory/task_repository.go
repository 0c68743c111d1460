package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// TaskRepository keeps task records in insertion order.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []entity.TaskRecord
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

func (r *TaskRepository) Create(_ context.Context, t *entity.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	r.tasks = append(r.tasks, *t)
	return nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, owner string) ([]entity.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.TaskRecord, 0)
	for _, t := range r.tasks {
		if t.UserID == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TaskRepository) Update(_ context.Context, id primitive.ObjectID, owner string, changes entity.TaskChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id, owner)
	if i < 0 {
		return repository.ErrNotFound
	}
	changes.Apply(&r.tasks[i])
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id primitive.ObjectID, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id, owner)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// indexOf must be called with the lock held.
func (r *TaskRepository) indexOf(id primitive.ObjectID, owner string) int {
	for i, t := range r.tasks {
		if t.ID == id && t.UserID == owner {
			return i
		}
	}
	return -1
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
