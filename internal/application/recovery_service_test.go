package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/config"
	"github.com/oksasatya/agrosphere-api/internal/infrastructure/memory"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
	"github.com/oksasatya/agrosphere-api/pkg/mailer"
	mailtpl "github.com/oksasatya/agrosphere-api/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []mailer.EmailJob
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var job mailer.EmailJob
	if err := json.Unmarshal(b, &job); err != nil {
		return err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

func newRecoveryFixture(t *testing.T) (*RecoveryService, *miniredis.Miniredis, *capturePublisher, *memory.UserRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users := memory.NewUserRepository()
	_, err := NewUserService(users, nil).Register(context.Background(), map[string]any{"email": "a@x.com", "password": "old"})
	require.NoError(t, err)

	pub := &capturePublisher{}
	cfg := &config.Config{AppName: "AgroSphere", RecoveryOTPTTL: 5 * time.Minute}
	return NewRecoveryService(cfg, rdb, users, pub, helpers.NewNopLogger()), mr, pub, users
}

func TestSendRecoveryEmailStoresCodeAndPublishes(t *testing.T) {
	svc, mr, pub, _ := newRecoveryFixture(t)

	require.NoError(t, svc.SendRecoveryEmail(context.Background(), "a@x.com", "10.0.0.1"))

	code, err := mr.Get(helpers.KeyRecoveryOTP("a@x.com"))
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, 5*time.Minute, mr.TTL(helpers.KeyRecoveryOTP("a@x.com")))

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, "a@x.com", job.To)
	assert.Equal(t, mailtpl.PasswordRecovery, job.Template)
	assert.Equal(t, code, job.Data["Code"])
	assert.Equal(t, "10.0.0.1", job.Data["IP"])
}

func TestSendRecoveryEmailUnknownUserIsSilent(t *testing.T) {
	svc, mr, pub, _ := newRecoveryFixture(t)

	require.NoError(t, svc.SendRecoveryEmail(context.Background(), "ghost@x.com", ""))
	assert.False(t, mr.Exists(helpers.KeyRecoveryOTP("ghost@x.com")))
	assert.Empty(t, pub.jobs)

	assert.ErrorIs(t, svc.SendRecoveryEmail(context.Background(), " ", ""), ErrInvalidInput)
}

func TestResetPasswordConsumesCodeOnce(t *testing.T) {
	svc, mr, _, users := newRecoveryFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.SendRecoveryEmail(ctx, "a@x.com", ""))
	code, err := mr.Get(helpers.KeyRecoveryOTP("a@x.com"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "a@x.com", "000000x", "new"), ErrInvalidOTP)
	require.NoError(t, svc.ResetPassword(ctx, "a@x.com", code, "new"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, "a@x.com", code, "newer"), ErrInvalidOTP)

	u, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "new"))
}

func TestResetPasswordExpiredCode(t *testing.T) {
	svc, mr, _, _ := newRecoveryFixture(t)
	ctx := context.Background()
	require.NoError(t, svc.SendRecoveryEmail(ctx, "a@x.com", ""))
	code, err := mr.Get(helpers.KeyRecoveryOTP("a@x.com"))
	require.NoError(t, err)

	mr.FastForward(6 * time.Minute)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "a@x.com", code, "new"), ErrInvalidOTP)
}

func TestRecoveryWithoutRedis(t *testing.T) {
	svc := NewRecoveryService(&config.Config{}, nil, memory.NewUserRepository(), nil, nil)
	assert.ErrorIs(t, svc.SendRecoveryEmail(context.Background(), "a@x.com", ""), ErrStorageUnavailable)
	assert.ErrorIs(t, svc.ResetPassword(context.Background(), "a@x.com", "123456", "x"), ErrStorageUnavailable)
}
