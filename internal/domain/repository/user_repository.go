package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
)

// ErrNotFound is returned when no record matches a lookup or update filter.
var ErrNotFound = errors.New("not found")

// UserFilter selects users by equality; zero fields are ignored.
type UserFilter struct {
	Role      entity.Role
	IsRequest *bool
}

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	// Create inserts u unless a user with the same email exists.
	// It reports whether an insert happened.
	Create(ctx context.Context, u *entity.User) (bool, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]entity.User, error)
	// RequestRole flags the user as asking for role; returns matched and modified counts.
	RequestRole(ctx context.Context, email string, role entity.Role) (int64, int64, error)
	// GrantRequestedRole promotes wannaBe to role and clears the request flags.
	GrantRequestedRole(ctx context.Context, email string) (entity.Role, error)
	UpdatePassword(ctx context.Context, email, hash string) error
}
