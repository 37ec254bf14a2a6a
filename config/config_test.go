package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/clickflow/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clickflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, s.Store.Backend)
	assert.Equal(t, ".clickflow", s.StorePath())
	assert.Equal(t, "clickflow:", s.Store.Redis.Prefix)
	assert.Equal(t, "kv", s.Store.Sqlite.Table)
	assert.Equal(t, 500*time.Millisecond, s.Engine.Pacing)
	assert.Equal(t, 500*time.Millisecond, s.Engine.ResumeDelay)
	assert.Equal(t, log.LogLevelInfo, s.LogLevel())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: sqlite
  path: /tmp/flow.db
  sqlite:
    table: flows
engine:
  pacing: 100ms
  resume_delay: 1s
log:
  level: debug
`)

	s, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, BackendSqlite, s.Store.Backend)
	assert.Equal(t, "/tmp/flow.db", s.StorePath())
	assert.Equal(t, "flows", s.Store.Sqlite.Table)
	assert.Equal(t, 100*time.Millisecond, s.Engine.Pacing)
	assert.Equal(t, time.Second, s.Engine.ResumeDelay)
	assert.Equal(t, log.LogLevelDebug, s.LogLevel())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: memory\n")
	t.Setenv("CLICKFLOW_STORE_BACKEND", "redis")
	t.Setenv("CLICKFLOW_STORE_REDIS_ADDR", "cache:6380")
	t.Setenv("CLICKFLOW_ENGINE_PACING", "0s")

	s, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, s.Store.Backend)
	assert.Equal(t, "cache:6380", s.Store.Redis.Addr)
	assert.Equal(t, time.Duration(0), s.Engine.Pacing)
}

func TestLoad_ExplicitSetWins(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: sqlite\n")
	v := New()
	v.Set("store.backend", BackendMemory)

	s, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, s.Store.Backend)
	assert.Equal(t, "", s.StorePath())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Store: StoreSettings{Backend: BackendMemory},
			Log:   LogSettings{Level: "info"},
		}
	}

	s := valid()
	assert.NoError(t, s.Validate())

	s = valid()
	s.Store.Backend = "floppy"
	assert.ErrorContains(t, s.Validate(), "store.backend")

	s = valid()
	s.Store.Backend = BackendPostgres
	assert.ErrorContains(t, s.Validate(), "store.postgres.dsn")

	s = valid()
	s.Store.Backend = BackendRedis
	assert.ErrorContains(t, s.Validate(), "store.redis.addr")

	s = valid()
	s.Engine.Pacing = -time.Second
	s.Engine.ResumeDelay = -time.Second
	err := s.Validate()
	assert.ErrorContains(t, err, "engine.pacing")
	assert.ErrorContains(t, err, "engine.resume_delay")

	s = valid()
	s.Log.Level = "loud"
	assert.ErrorContains(t, s.Validate(), "log.level")
}
