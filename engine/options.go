package engine

import (
	"time"

	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/workflow"
)

const (
	// DefaultPacing is the pause before every executed step.
	DefaultPacing = 500 * time.Millisecond
	// DefaultResumeDelay is the pause before a resumed run begins.
	DefaultResumeDelay = 500 * time.Millisecond
)

// Option configures an Engine.
type Option func(*Engine)

// WithRepository sets where the checkpoint and user items are stored.
// Without it the engine keeps them in memory.
func WithRepository(repo *workflow.Repository) Option {
	return func(e *Engine) {
		e.repo = repo
	}
}

// WithSinks sets the output sinks. Steps that need a sink are skipped when
// none is set.
func WithSinks(sinks Sinks) Option {
	return func(e *Engine) {
		e.sinks = sinks
	}
}

// WithHost sets the host used for alerts, prompts and teardown.
func WithHost(host Host) Option {
	return func(e *Engine) {
		e.host = host
	}
}

// WithButton sets the button the resize and recolor steps modify.
func WithButton(button *Button) Option {
	return func(e *Engine) {
		e.button = button
	}
}

// WithPacing sets the delay before each executed step.
func WithPacing(d time.Duration) Option {
	return func(e *Engine) {
		e.pacing = d
	}
}

// WithResumeDelay sets the delay before a checkpoint is resumed.
func WithResumeDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.resumeDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithListener adds listeners.
func WithListener(listeners ...Listener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, listeners...)
	}
}
