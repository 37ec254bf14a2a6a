// Package config loads clickflow settings with viper.
//
// Settings come from, in increasing priority: built-in defaults, a
// clickflow.yaml file (working directory or $HOME/.config/clickflow),
// CLICKFLOW_* environment variables (dots become underscores, so
// CLICKFLOW_STORE_BACKEND sets store.backend) and values set explicitly on
// the viper instance, which is how command-line flags are bound.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/smallnest/clickflow/log"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "CLICKFLOW"

// Store backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSqlite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Backends lists the supported store backends.
var Backends = []string{BackendMemory, BackendFile, BackendSqlite, BackendRedis, BackendPostgres}

// Settings is the full application configuration.
type Settings struct {
	Store  StoreSettings  `mapstructure:"store"`
	Engine EngineSettings `mapstructure:"engine"`
	Log    LogSettings    `mapstructure:"log"`
}

// StoreSettings selects and configures the key-value store.
type StoreSettings struct {
	Backend  string           `mapstructure:"backend"`
	Path     string           `mapstructure:"path"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Postgres PostgresSettings `mapstructure:"postgres"`
	Sqlite   SqliteSettings   `mapstructure:"sqlite"`
}

type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type PostgresSettings struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

type SqliteSettings struct {
	Table string `mapstructure:"table"`
}

// EngineSettings tunes the execution engine.
type EngineSettings struct {
	Pacing      time.Duration `mapstructure:"pacing"`
	ResumeDelay time.Duration `mapstructure:"resume_delay"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "clickflow:")
	v.SetDefault("store.postgres.dsn", "")
	v.SetDefault("store.postgres.table", "clickflow_kv")
	v.SetDefault("store.sqlite.table", "kv")
	v.SetDefault("engine.pacing", 500*time.Millisecond)
	v.SetDefault("engine.resume_delay", 500*time.Millisecond)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the settings. An explicit path must exist; without one a
// missing clickflow.yaml is not an error.
func Load(v *viper.Viper, path string) (*Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("clickflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clickflow"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings for values no component can use.
func (s *Settings) Validate() error {
	var errs []error
	if !slices.Contains(Backends, s.Store.Backend) {
		errs = append(errs, fmt.Errorf("store.backend %q is not one of %s", s.Store.Backend, strings.Join(Backends, ", ")))
	}
	if s.Store.Backend == BackendRedis && s.Store.Redis.Addr == "" {
		errs = append(errs, errors.New("store.redis.addr is required for the redis backend"))
	}
	if s.Store.Backend == BackendPostgres && s.Store.Postgres.DSN == "" {
		errs = append(errs, errors.New("store.postgres.dsn is required for the postgres backend"))
	}
	if s.Engine.Pacing < 0 {
		errs = append(errs, fmt.Errorf("engine.pacing must not be negative, got %s", s.Engine.Pacing))
	}
	if s.Engine.ResumeDelay < 0 {
		errs = append(errs, fmt.Errorf("engine.resume_delay must not be negative, got %s", s.Engine.ResumeDelay))
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StorePath returns the configured path, or the default location for the
// file and sqlite backends.
func (s *Settings) StorePath() string {
	if s.Store.Path != "" {
		return s.Store.Path
	}
	switch s.Store.Backend {
	case BackendFile:
		return ".clickflow"
	case BackendSqlite:
		return "clickflow.db"
	default:
		return ""
	}
}

// LogLevel returns the parsed log level.
func (s *Settings) LogLevel() log.LogLevel {
	level, _ := log.ParseLevel(s.Log.Level)
	return level
}
