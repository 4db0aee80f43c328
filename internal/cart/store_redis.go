package cart

import (
	"context"
	"time"
)

// KV is the slice of the redis client the cart store uses.
type KV interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(session string) string
}

// RedisStore keeps each cart under sweetslice:cart:<session>, shared by every API instance.
type RedisStore struct {
	kv  KV
	ttl time.Duration
}

// NewRedisStore builds the store. A zero ttl keeps carts until cleared.
func NewRedisStore(kv KV, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.kv.GetBytes(ctx, s.kv.CartKey(key))
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	return s.kv.Set(ctx, s.kv.CartKey(key), data, s.ttl)
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.kv.Del(ctx, s.kv.CartKey(key))
}
