package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

func newUserService() (*UserService, *memory.UserRepository) {
	r := memory.NewUserRepository()
	return NewUserService(r, helpers.NewNopLogger()), r
}

func TestRegisterIsIdempotentAndHashes(t *testing.T) {
	svc, r := newUserService()
	ctx := context.Background()

	res, err := svc.Register(ctx, map[string]any{"email": "a@x.com", "password": "secret", "name": "Ana", "role": "admin"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.InsertedID.IsZero())

	again, err := svc.Register(ctx, map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	assert.False(t, again.Created)

	u, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, helpers.IsBcryptHash(u.Password))
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "secret"))
	assert.Empty(t, u.Role, "role is never taken from the payload")
	assert.Equal(t, "Ana", u.Profile["name"])
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.Register(context.Background(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterRejectsOperatorKeys(t *testing.T) {
	svc, r := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, map[string]any{"email": "a@x.com", "$set": map[string]any{"role": "admin"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.GetByEmail(ctx, "a@x.com")
	assert.Error(t, err)
}

func TestRoleWorkflow(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	role, err := svc.RoleOf(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, role)

	_, err = svc.RequestRoleChange(ctx, "a@x.com", "wizard")
	assert.ErrorIs(t, err, ErrInvalidRole)

	res, err := svc.RequestRoleChange(ctx, "a@x.com", entity.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, RoleChangeResult{Matched: 1, Modified: 1}, res)

	pending, err := svc.IncomingRequests(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, entity.RoleSeller, pending[0].WannaBe)

	granted, err := svc.ApproveRoleRequest(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, granted)

	sellers, err := svc.Sellers(ctx)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.False(t, sellers[0].IsRequest)

	_, err = svc.ApproveRoleRequest(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNoPendingRequest)

	_, err = svc.RoleOf(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePassword(t *testing.T) {
	svc, r := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, map[string]any{"email": "a@x.com", "password": "old"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, "a@x.com", ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdatePassword(ctx, "ghost@x.com", "new"), ErrUserNotFound)
	require.NoError(t, svc.UpdatePassword(ctx, "a@x.com", "new"))

	u, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "new"))
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	_, err := svc.Register(ctx, map[string]any{"email": "a@x.com", "password": "secret"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ghost@x.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRehashesLegacyPlainPassword(t *testing.T) {
	svc, r := newUserService()
	ctx := context.Background()
	_, err := r.Create(ctx, &entity.User{Email: "old@x.com", Password: "plain"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "old@x.com", "plain")
	require.NoError(t, err)

	u, err := r.GetByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.True(t, helpers.IsBcryptHash(u.Password))
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "plain"))
}
