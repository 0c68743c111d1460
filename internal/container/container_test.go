package container

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/config"
	"github.com/oksasatya/agrosphere-api/pkg/helpers"
)

func TestNewLeavesOptionalBackendsUnset(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s", TokenTTL: time.Hour}
	c := New(cfg, helpers.NewNopLogger(), MemoryStores(), Infra{})

	assert.Nil(t, c.Recovery.Publisher)
	assert.Nil(t, c.Assistant.Model)
	assert.Nil(t, c.Media.Storage)
	for _, name := range []string{Videos, Forum, Trainers, SuccessStories, Products} {
		require.Contains(t, c.Collections, name)
		assert.Nil(t, c.Collections[name].Index, name)
	}
	assert.Same(t, c.Collections[Videos], c.Media.Videos)
	assert.NoError(t, c.Close(context.Background()))
}

func TestBuildMemoryStoreWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		StoreDriver: config.StoreMemory,
		RedisAddr:   mr.Addr(),
		JWTSecret:   "s",
		TokenTTL:    time.Hour,
	}
	c, err := Build(context.Background(), cfg, helpers.NewNopLogger())
	require.NoError(t, err)
	require.NotNil(t, c.Redis)
	assert.Same(t, c.Redis, c.Recovery.Redis)
	require.NoError(t, c.Close(context.Background()))
	assert.ErrorIs(t, c.Redis.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestBuildRejectsUnknownDriver(t *testing.T) {
	_, err := Build(context.Background(), &config.Config{StoreDriver: "sqlite"}, helpers.NewNopLogger())
	assert.Error(t, err)
}
