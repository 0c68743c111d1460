package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, 365*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.RecoveryOTPTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MAIL_SEND_ENABLED", "nope")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 365*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.MailSendEnabled)
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test , ,http://b.test",
		ElasticsearchAddrs: "",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}
