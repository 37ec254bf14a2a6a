package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/store"
)

// Storage keys shared with user-chosen keys in the same namespace.
const (
	ConfigKey     = "workflow_config"
	CheckpointKey = "workflow_execution_state"
)

// Repository persists the workflow configuration, the execution checkpoint
// and user items in a store.Store.
type Repository struct {
	store  store.Store
	logger log.Logger
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithRepositoryLogger sets the logger used to report corrupt stored data.
func WithRepositoryLogger(logger log.Logger) RepositoryOption {
	return func(r *Repository) {
		r.logger = logger
	}
}

// NewRepository creates a Repository over s.
func NewRepository(s store.Store, opts ...RepositoryOption) *Repository {
	r := &Repository{
		store:  s,
		logger: log.Component("workflow"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the underlying key-value store.
func (r *Repository) Store() store.Store {
	return r.store
}

// SaveConfig writes the whole configuration.
func (r *Repository) SaveConfig(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow config: %w", err)
	}
	if err := r.store.Set(ctx, ConfigKey, string(data)); err != nil {
		return fmt.Errorf("failed to save workflow config: %w", err)
	}
	return nil
}

// LoadConfig reads the configuration. A missing or corrupt document yields
// DefaultConfig; only store failures are returned as errors.
func (r *Repository) LoadConfig(ctx context.Context) (*Config, error) {
	raw, found, err := store.Lookup(ctx, r.store, ConfigKey)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to load workflow config: %w", err)
	}
	if !found {
		return DefaultConfig(), nil
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		r.logger.Warn("failed to parse stored workflow config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	if cfg.Actions == nil {
		cfg.Actions = []Action{}
	}
	for i := range cfg.Actions {
		if cfg.Actions[i].Params == nil {
			cfg.Actions[i].Params = Params{}
		}
	}
	return &cfg, nil
}

// ClearConfig removes the stored configuration.
func (r *Repository) ClearConfig(ctx context.Context) error {
	if err := r.store.Delete(ctx, ConfigKey); err != nil {
		return fmt.Errorf("failed to clear workflow config: %w", err)
	}
	return nil
}

// SaveCheckpoint overwrites the execution checkpoint.
func (r *Repository) SaveCheckpoint(ctx context.Context, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}
	if err := r.store.Set(ctx, CheckpointKey, string(data)); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint returns the stored checkpoint, or nil when there is none
// or it cannot be parsed.
func (r *Repository) LoadCheckpoint(ctx context.Context) (*Checkpoint, error) {
	raw, found, err := store.Lookup(ctx, r.store, CheckpointKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if !found {
		return nil, nil
	}

	var cp Checkpoint
	if err := json.Unmarshal([]byte(raw), &cp); err != nil {
		r.logger.Warn("failed to parse stored checkpoint, ignoring it: %v", err)
		return nil, nil
	}
	return &cp, nil
}

// ClearCheckpoint deletes the execution checkpoint.
func (r *Repository) ClearCheckpoint(ctx context.Context) error {
	if err := r.store.Delete(ctx, CheckpointKey); err != nil {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return nil
}

// SetItem stores a user value. Reserved keys are not protected.
func (r *Repository) SetItem(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set item %q: %w", key, err)
	}
	return nil
}

// GetItem returns a user value and whether it exists.
func (r *Repository) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %q: %w", key, err)
	}
	return value, true, nil
}
