package engine

import (
	"context"

	"github.com/smallnest/clickflow/workflow"
)

// Event identifies what happened during a run.
type Event string

const (
	// EventRunStarted is emitted by Start with the starting index.
	EventRunStarted Event = "run_start"

	// EventRunResumed is emitted when a checkpoint is picked up, with the
	// index execution continues from.
	EventRunResumed Event = "run_resume"

	// EventRunCompleted is emitted after the last step, with the action count.
	EventRunCompleted Event = "run_complete"

	// EventStepStarted is emitted right before a step's effect runs.
	EventStepStarted Event = "step_start"

	// EventStepCompleted is emitted once a step is done and checkpointed.
	EventStepCompleted Event = "step_complete"

	// EventStepSkipped is emitted for a step completed by an earlier run.
	EventStepSkipped Event = "step_skip"

	// EventStepFailed is emitted when a step returns an error or panics.
	EventStepFailed Event = "step_error"

	// EventStepStopped is emitted when a step tore down the host.
	EventStepStopped Event = "step_stop"
)

// Listener observes a running engine.
type Listener interface {
	OnEvent(ctx context.Context, event Event, index int, action workflow.Action, err error)
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(ctx context.Context, event Event, index int, action workflow.Action, err error)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(ctx context.Context, event Event, index int, action workflow.Action, err error) {
	f(ctx, event, index, action, err)
}

// notify calls every listener in order. A panicking listener is logged and
// does not affect the run.
func (e *Engine) notify(ctx context.Context, event Event, index int, action workflow.Action, err error) {
	for _, l := range e.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("listener panicked on %s: %v", event, r)
				}
			}()
			l.OnEvent(ctx, event, index, action, err)
		}()
	}
}
