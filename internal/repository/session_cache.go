package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hr-console/internal/session"
)

const sessionKeyPrefix = "hrconsole:session:"

// KV is the subset of the go-redis client used by the session cache.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type sessionCache struct {
	kv KV
}

// NewSessionCache returns a Redis-backed session store. Redis TTLs expire records.
func NewSessionCache(kv KV) session.Store {
	return &sessionCache{kv: kv}
}

func (r *sessionCache) Name() string { return "redis" }

func (r *sessionCache) Save(ctx context.Context, handle, payload string, ttl time.Duration) (string, error) {
	if handle == "" {
		handle = session.NewHandle()
	}
	if err := r.kv.Set(ctx, sessionKeyPrefix+handle, payload, ttl).Err(); err != nil {
		return "", err
	}
	return handle, nil
}

func (r *sessionCache) Load(ctx context.Context, handle string) (string, error) {
	payload, err := r.kv.Get(ctx, sessionKeyPrefix+handle).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", session.ErrNotFound
		}
		return "", err
	}
	return payload, nil
}

func (r *sessionCache) Delete(ctx context.Context, handle string) error {
	return r.kv.Del(ctx, sessionKeyPrefix+handle).Err()
}
