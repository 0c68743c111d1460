package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// UserRepository keeps users in-process, keyed by email.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]entity.User
	orders []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.Email]; exists {
		return false, nil
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.Email] = copyUser(*u)
	r.orders = append(r.orders, u.Email)
	return true, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := copyUser(u)
	return &out, nil
}

func (r *UserRepository) List(_ context.Context, f repository.UserFilter) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.User, 0, len(r.orders))
	for _, email := range r.orders {
		u := r.users[email]
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsRequest != nil && u.IsRequest != *f.IsRequest {
			continue
		}
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (r *UserRepository) RequestRole(_ context.Context, email string, role entity.Role) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return 0, 0, nil
	}
	if u.IsRequest && u.WannaBe == role {
		return 1, 0, nil
	}
	u.IsRequest = true
	u.WannaBe = role
	r.users[email] = u
	return 1, 1, nil
}

func (r *UserRepository) GrantRequestedRole(_ context.Context, email string) (entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok || !u.IsRequest || u.WannaBe == "" {
		return "", repository.ErrNotFound
	}
	u.Role = u.WannaBe
	u.WannaBe = ""
	u.IsRequest = false
	r.users[email] = u
	return u.Role, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, email, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	r.users[email] = u
	return nil
}

func copyUser(u entity.User) entity.User {
	if u.Profile != nil {
		p := make(map[string]any, len(u.Profile))
		for k, v := range u.Profile {
			p[k] = v
		}
		u.Profile = p
	}
	return u
}

var _ repository.UserRepository = (*UserRepository)(nil)
