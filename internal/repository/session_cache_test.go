package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hr-console/internal/session"
)

type fakeKV struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestSessionCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	cache := NewSessionCache(kv)
	assert.Equal(t, "redis", cache.Name())

	handle, err := cache.Save(ctx, "", "sealed", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, kv.ttl[sessionKeyPrefix+handle])

	payload, err := cache.Load(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, "sealed", payload)

	require.NoError(t, cache.Delete(ctx, handle))
	require.NoError(t, cache.Delete(ctx, handle))

	_, err = cache.Load(ctx, handle)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	cache := NewSessionCache(kv)

	_, err := cache.Save(ctx, "", "sealed", time.Minute)
	assert.Error(t, err)

	_, err = cache.Load(ctx, "h")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrNotFound)
}
