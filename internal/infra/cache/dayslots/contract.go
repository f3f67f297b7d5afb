package dayslots

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient подмножество *redis.Client, используемое кешем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
