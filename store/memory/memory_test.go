package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/smallnest/clickflow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_New(t *testing.T) {
	t.Parallel()

	ms := NewMemoryStore()
	require.NotNil(t, ms)

	var _ store.Store = ms
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, ms.Set(ctx, "workflow_config", `{"buttonLabel":"Go"}`))

		value, err := ms.Get(ctx, "workflow_config")
		require.NoError(t, err)
		assert.Equal(t, `{"buttonLabel":"Go"}`, value)
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := NewMemoryStore().Get(context.Background(), "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, ms.Set(ctx, "k", "one"))
		require.NoError(t, ms.Set(ctx, "k", "two"))

		value, err := ms.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", value)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStore()
		ctx := context.Background()
		require.NoError(t, ms.Set(ctx, "k", "v"))
		require.NoError(t, ms.Delete(ctx, "k"))
		require.NoError(t, ms.Delete(ctx, "k"))

		_, found, err := store.Lookup(ctx, ms, "k")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("keys are sorted", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStore()
		ctx := context.Background()
		for _, k := range []string{"b", "c", "a"} {
			require.NoError(t, ms.Set(ctx, k, k))
		}

		keys, err := ms.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	ms := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			_ = ms.Set(ctx, key, key)
			_, _ = ms.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	keys, err := ms.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 50)
}
