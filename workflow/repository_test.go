package workflow

import (
	"context"
	"testing"

	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() (*Repository, *memory.MemoryStore) {
	kv := memory.NewMemoryStore()
	return NewRepository(kv, WithRepositoryLogger(&log.NoOpLogger{})), kv
}

func TestRepository_ConfigRoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	cfg, err := repo.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg.ButtonLabel = "Launch"
	cfg.Add(Action{ID: "one", Kind: "showText", Params: Params{"text": "hi"}})
	require.NoError(t, repo.SaveConfig(ctx, cfg))

	loaded, err := repo.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Launch", loaded.ButtonLabel)
	require.Len(t, loaded.Actions, 1)
	assert.Equal(t, "hi", loaded.Actions[0].Params.String("text", ""))

	require.NoError(t, repo.ClearConfig(ctx))
	loaded, err = repo.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultButtonLabel, loaded.ButtonLabel)
}

func TestRepository_CorruptConfigFallsBackToDefault(t *testing.T) {
	repo, kv := newTestRepository()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, ConfigKey, "{not json"))

	cfg, err := repo.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestRepository_Checkpoint(t *testing.T) {
	repo, kv := newTestRepository()
	ctx := context.Background()

	cp, err := repo.LoadCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, cp)

	require.NoError(t, repo.SaveCheckpoint(ctx, CheckpointAfter(0, 3)))

	raw, err := kv.Get(ctx, CheckpointKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lastCompletedStepIndex":0,"nextStepIndex":1,"isComplete":false}`, raw)

	cp, err = repo.LoadCheckpoint(ctx)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, 1, cp.NextStepIndex)

	require.NoError(t, repo.ClearCheckpoint(ctx))
	cp, err = repo.LoadCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestRepository_CorruptCheckpointIsIgnored(t *testing.T) {
	repo, kv := newTestRepository()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, CheckpointKey, "garbage"))

	cp, err := repo.LoadCheckpoint(ctx)
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestRepository_Items(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	_, found, err := repo.GetItem(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetItem(ctx, "theme", "dark"))
	value, found, err := repo.GetItem(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	// user keys share the namespace with the reserved keys
	require.NoError(t, repo.SetItem(ctx, ConfigKey, "clobbered"))
	cfg, err := repo.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultButtonLabel, cfg.ButtonLabel)
}
