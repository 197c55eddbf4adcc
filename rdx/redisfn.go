package rdx

import (
	"time"

	"greennest/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Connect opens the Redis connection used for the token cache and the
// plant-category cache. Called once from main, closed at shutdown.
func Connect() error {
	Conn = redis.NewClient(&redis.Options{
		Addr:     globals.EnvOr("REDIS_ADDR", "localhost:6379"),
		Password: "",
		DB:       0,
	})
	return Conn.Ping(globals.Ctx).Err()
}

func Close() error {
	if Conn == nil {
		return nil
	}
	return Conn.Close()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}
