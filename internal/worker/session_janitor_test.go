package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/session"
)

func TestRunSessionJanitor_PurgesExpired(t *testing.T) {
	store := session.NewMemoryStore()
	_, err := store.Save(context.Background(), "", "payload", time.Millisecond)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "", "payload", time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSessionJanitor(ctx, store, 5*time.Millisecond, zap.NewNop())
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop with its context")
	}
}

func TestRunSessionJanitor_SkipsStoresWithoutPurge(t *testing.T) {
	done := make(chan struct{})
	go func() {
		RunSessionJanitor(context.Background(), session.NewCookieStore(), time.Millisecond, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor should return immediately for the cookie store")
	}
}
