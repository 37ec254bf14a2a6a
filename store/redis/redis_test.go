package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/smallnest/clickflow/store"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore(t *testing.T) {
	// Start miniredis
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{
		Addr: mr.Addr(),
	})
	defer s.Close()

	ctx := context.Background()

	// Test Get missing
	_, err = s.Get(ctx, "workflow_execution_state")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Test Set / Get
	err = s.Set(ctx, "workflow_execution_state", `{"nextStepIndex":1}`)
	assert.NoError(t, err)

	value, err := s.Get(ctx, "workflow_execution_state")
	assert.NoError(t, err)
	assert.Equal(t, `{"nextStepIndex":1}`, value)

	// Stored under the default prefix
	raw, err := mr.Get("clickflow:workflow_execution_state")
	assert.NoError(t, err)
	assert.Equal(t, `{"nextStepIndex":1}`, raw)

	// Test Keys ignores foreign keys
	mr.Set("other:thing", "x")
	assert.NoError(t, s.Set(ctx, "a", "1"))
	keys, err := s.Keys(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "workflow_execution_state"}, keys)

	// Test Delete
	assert.NoError(t, s.Delete(ctx, "a"))
	assert.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{
		Addr:   mr.Addr(),
		Prefix: "cf:",
		TTL:    time.Minute,
	})
	defer s.Close()

	ctx := context.Background()
	assert.NoError(t, s.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL("cf:k"))

	mr.FastForward(2 * time.Minute)

	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
