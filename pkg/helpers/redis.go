package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PingRedis verifies connectivity with a short timeout.
func PingRedis(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// compareAndDelete removes KEYS[1] only when it holds ARGV[1].
var compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConsume deletes key if it currently equals value and reports whether it did.
// It makes one-time codes single-use even under concurrent attempts.
func RedisConsume(ctx context.Context, rdb *redis.Client, key, value string) (bool, error) {
	n, err := compareAndDeleteScript.Run(ctx, rdb, []string{key}, value).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
