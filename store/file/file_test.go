package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallnest/clickflow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_New(t *testing.T) {
	t.Parallel()

	t.Run("creates directory if missing", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "kv")

		fs, err := NewFileStore(dir)
		require.NoError(t, err)
		require.NotNil(t, fs)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileStore("  ")
		assert.Error(t, err)
	})
}

func TestFileStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Get(ctx, "workflow_execution_state")
	assert.ErrorIs(t, err, store.ErrNotFound)

	state := `{"lastCompletedStepIndex":0,"nextStepIndex":1,"isComplete":false}`
	require.NoError(t, fs.Set(ctx, "workflow_execution_state", state))

	value, err := fs.Get(ctx, "workflow_execution_state")
	require.NoError(t, err)
	assert.Equal(t, state, value)

	require.NoError(t, fs.Delete(ctx, "workflow_execution_state"))
	require.NoError(t, fs.Delete(ctx, "workflow_execution_state"))

	_, err = fs.Get(ctx, "workflow_execution_state")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_UnsafeKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	keys := []string{"../escape", "a/b", "with space", ".."}
	for _, k := range keys {
		require.NoError(t, fs.Set(ctx, k, "v:"+k))
	}

	for _, k := range keys {
		value, err := fs.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, "v:"+k, value)
	}

	listed, err := fs.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, keys, listed)

	// nothing was written outside the store directory
	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, "escape", e.Name())
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "color", "#ff0000"))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	value, err := second.Get(ctx, "color")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", value)
}

func TestFileStore_LongKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	long := strings.Repeat("k", 200)
	longer := strings.Repeat("x", 4096)
	require.NoError(t, fs.Set(ctx, long, "v"))
	require.NoError(t, fs.Set(ctx, longer, "w"))
	require.NoError(t, fs.Set(ctx, "short", "s"))

	value, err := fs.Get(ctx, long)
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, fs.Set(ctx, long, "v2"))
	value, err = fs.Get(ctx, long)
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	listed, err := fs.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{long, "short", longer}, listed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.LessOrEqual(t, len(e.Name()), 255)
	}

	require.NoError(t, fs.Delete(ctx, long))
	_, err = fs.Get(ctx, long)
	assert.ErrorIs(t, err, store.ErrNotFound)

	listed, err = fs.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"short", longer}, listed)
}
