package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/config"
	repo "github.com/oksasatya/agrosphere-api/internal/domain/repository"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
	"github.com/oksasatya/agrosphere-api/pkg/mailer"
	mailtpl "github.com/oksasatya/agrosphere-api/pkg/mailer/templates"
)

// RecoveryService issues one-time codes for password recovery and redeems them.
type RecoveryService struct {
	Cfg       *config.Config
	Redis     *redis.Client
	Users     repo.UserRepository
	Publisher helpers.JSONPublisher
	Logger    *logrus.Logger
	now       func() time.Time
}

// NewRecoveryService wires the service; pub may be nil when no queue is configured.
func NewRecoveryService(cfg *config.Config, rdb *redis.Client, users repo.UserRepository, pub helpers.JSONPublisher, logger *logrus.Logger) *RecoveryService {
	return &RecoveryService{Cfg: cfg, Redis: rdb, Users: users, Publisher: pub, Logger: logger, now: time.Now}
}

// SendRecoveryEmail stores a fresh code for email and enqueues the recovery email.
// Unknown emails succeed silently.
func (s *RecoveryService) SendRecoveryEmail(ctx context.Context, email, ip string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: recipient_email is required", ErrInvalidInput)
	}
	if s.Redis == nil {
		return ErrStorageUnavailable
	}
	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.LogInfo(s.Logger, "recovery requested for unknown email", logrus.Fields{"email": email})
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	ttl := s.Cfg.RecoveryOTPTTL
	if err := s.Redis.Set(ctx, helpers.KeyRecoveryOTP(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if s.Publisher == nil {
		helpers.LogInfo(s.Logger, "email queue not configured; recovery email skipped", logrus.Fields{"email": email})
		return nil
	}
	now := s.now()
	job := mailer.EmailJob{
		To:       email,
		Template: mailtpl.PasswordRecovery,
		Data: mailtpl.NewPasswordRecoveryData(s.Cfg, email, code,
			mailtpl.WithExpiresIn(now, ttl),
			mailtpl.WithIP(ip),
			mailtpl.WithTime(now),
		),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("publish recovery email: %w", err)
	}
	return nil
}

// ResetPassword redeems otp for email and sets the new password.
// A code can be redeemed once.
func (s *RecoveryService) ResetPassword(ctx context.Context, email, otp, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || otp == "" || password == "" {
		return fmt.Errorf("%w: recipient_email, otp and password are required", ErrInvalidInput)
	}
	if s.Redis == nil {
		return ErrStorageUnavailable
	}
	ok, err := helpers.RedisConsume(ctx, s.Redis, helpers.KeyRecoveryOTP(email), otp)
	if err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	if !ok {
		return ErrInvalidOTP
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
