package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/smallnest/clickflow/config"
	"github.com/smallnest/clickflow/store"
	"github.com/smallnest/clickflow/store/file"
	"github.com/smallnest/clickflow/store/memory"
	"github.com/smallnest/clickflow/store/postgres"
	"github.com/smallnest/clickflow/store/redis"
	"github.com/smallnest/clickflow/store/sqlite"
)

// openStore creates the backend selected by settings and returns a function
// that releases it.
func openStore(ctx context.Context, settings *config.Settings) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch settings.Store.Backend {
	case config.BackendMemory:
		return memory.NewMemoryStore(), noop, nil

	case config.BackendFile:
		dir, err := filepath.Abs(settings.StorePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve store path: %w", err)
		}
		fs, err := file.NewFileStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.BackendSqlite:
		s, err := sqlite.NewSqliteStore(sqlite.SqliteOptions{
			Path:      settings.StorePath(),
			TableName: settings.Store.Sqlite.Table,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendRedis:
		r := redis.NewRedisStore(redis.RedisOptions{
			Addr:     settings.Store.Redis.Addr,
			Password: settings.Store.Redis.Password,
			DB:       settings.Store.Redis.DB,
			Prefix:   settings.Store.Redis.Prefix,
		})
		return r, r.Close, nil

	case config.BackendPostgres:
		p, err := postgres.NewPostgresStore(ctx, postgres.PostgresOptions{
			ConnString: settings.Store.Postgres.DSN,
			TableName:  settings.Store.Postgres.Table,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := p.InitSchema(ctx); err != nil {
			p.Close()
			return nil, nil, err
		}
		return p, func() error { p.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", settings.Store.Backend)
	}
}
