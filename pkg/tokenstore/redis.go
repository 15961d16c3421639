package tokenstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisGetter reads token records with a plain GET against Redis.
// The client is shared process-wide; RedisGetter never closes it.
type RedisGetter struct {
	client redis.Cmdable
}

// NewRedisGetter wraps a go-redis client (single node, cluster or ring).
func NewRedisGetter(client redis.Cmdable) *RedisGetter {
	return &RedisGetter{client: client}
}

// Get maps redis.Nil to a miss; every other error is returned as is.
func (r *RedisGetter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}
