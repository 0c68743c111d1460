package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	repo "github.com/oksasatya/agrosphere-api/internal/domain/repository"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Logger: logger}
}

// RegisterResult reports whether a new user was stored.
type RegisterResult struct {
	Created    bool
	InsertedID primitive.ObjectID
}

// Register stores a user built from payload unless the email is taken.
// A password in the payload is stored as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, payload map[string]any) (RegisterResult, error) {
	u, plain, err := entity.NewUserFromPayload(payload)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if u.Email == "" {
		return RegisterResult{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if plain != "" {
		hash, err := helpers.HashPassword(plain)
		if err != nil {
			return RegisterResult{}, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
	}
	created, err := s.Repo.Create(ctx, u)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("create user: %w", err)
	}
	if !created {
		return RegisterResult{}, nil
	}
	return RegisterResult{Created: true, InsertedID: u.ID}, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.list(ctx, repo.UserFilter{})
}

// Sellers lists users holding the seller role.
func (s *UserService) Sellers(ctx context.Context) ([]entity.User, error) {
	return s.list(ctx, repo.UserFilter{Role: entity.RoleSeller})
}

// IncomingRequests lists users with a pending role request.
func (s *UserService) IncomingRequests(ctx context.Context) ([]entity.User, error) {
	pending := true
	return s.list(ctx, repo.UserFilter{IsRequest: &pending})
}

func (s *UserService) list(ctx context.Context, f repo.UserFilter) ([]entity.User, error) {
	users, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

// CheckUserRole returns the full user document for email.
func (s *UserService) CheckUserRole(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// RoleOf returns the stored role of email, or "" when it holds no valid role.
// ErrUserNotFound is returned for an unknown email; any other error is a storage fault.
func (s *UserService) RoleOf(ctx context.Context, email string) (entity.Role, error) {
	u, err := s.CheckUserRole(ctx, email)
	if err != nil {
		return "", err
	}
	if !u.Role.Valid() {
		return "", nil
	}
	return u.Role, nil
}

// RoleChangeResult mirrors the store's update counters.
type RoleChangeResult struct {
	Matched  int64
	Modified int64
}

// RequestRoleChange flags email as requesting role.
func (s *UserService) RequestRoleChange(ctx context.Context, email string, role entity.Role) (RoleChangeResult, error) {
	if !role.Valid() {
		return RoleChangeResult{}, ErrInvalidRole
	}
	matched, modified, err := s.Repo.RequestRole(ctx, email, role)
	if err != nil {
		return RoleChangeResult{}, fmt.Errorf("request role: %w", err)
	}
	return RoleChangeResult{Matched: matched, Modified: modified}, nil
}

// ApproveRoleRequest grants the pending role of email.
func (s *UserService) ApproveRoleRequest(ctx context.Context, email string) (entity.Role, error) {
	role, err := s.Repo.GrantRequestedRole(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrNoPendingRequest
		}
		return "", fmt.Errorf("grant role: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"email": email, "role": role}).Info("role request approved")
	}
	return role, nil
}

// UpdatePassword replaces the password of email with a bcrypt hash of password.
func (s *UserService) UpdatePassword(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Login checks password against the stored credential. A legacy plain-text
// password that matches is replaced with a bcrypt hash.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	ok, rehash := helpers.VerifyStoredPassword(u.Password, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if rehash {
		if err := s.UpdatePassword(ctx, email, password); err != nil {
			helpers.LogError(s.Logger, "rehash legacy password failed", err, logrus.Fields{"email": email})
		}
	}
	return u, nil
}
