package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a thin key/value wrapper used to write token records.
// Reads on the request path go through tokenstore.Gateway instead.
type Storage struct {
	db redis.UniversalClient
}

func NewStorage(client redis.UniversalClient) *Storage {
	return &Storage{db: client}
}

// Get returns nil for empty keys and missing values.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores key/value with expiration. Zero duration means no expiration.
// Empty keys are rejected with ErrEmptyKey.
func (s *Storage) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.db.Set(ctx, key, val, exp).Err()
}

// Delete removes a key. Empty keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, key).Err()
}
