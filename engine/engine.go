package engine

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/smallnest/clickflow/log"
	"github.com/smallnest/clickflow/store/memory"
	"github.com/smallnest/clickflow/workflow"
)

// State is the observable runtime state of an Engine.
type State struct {
	// CurrentStep is the index being executed, or -1.
	CurrentStep int
	Running     bool
	// Pending is true while a resumed run waits for its delay.
	Pending   bool
	Completed []int
	Total     int
}

// Engine executes a workflow step by step and checkpoints after each step.
type Engine struct {
	actions     []workflow.Action
	repo        *workflow.Repository
	sinks       Sinks
	host        Host
	button      *Button
	pacing      time.Duration
	resumeDelay time.Duration
	logger      log.Logger
	listeners   []Listener
	handlers    map[string]stepFunc

	// persistMu orders checkpoint writes against Reset and Start.
	persistMu sync.Mutex

	mu         sync.Mutex
	current    int
	running    bool
	pending    bool
	completed  map[int]struct{}
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates an engine for actions. If the repository holds an incomplete
// checkpoint for a list of this length, execution resumes from it after the
// resume delay; otherwise the engine waits for Start.
func New(ctx context.Context, actions []workflow.Action, opts ...Option) *Engine {
	e := &Engine{
		actions:     slices.Clone(actions),
		pacing:      DefaultPacing,
		resumeDelay: DefaultResumeDelay,
		current:     -1,
		completed:   make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Component("engine")
	}
	if e.repo == nil {
		e.repo = workflow.NewRepository(memory.NewMemoryStore(), workflow.WithRepositoryLogger(e.logger))
	}
	if e.host == nil {
		e.host = NopHost{}
	}
	if e.button == nil {
		e.button = NewButton(workflow.DefaultButtonLabel)
	}
	e.handlers = e.dispatchTable()

	e.tryResume(ctx)
	return e
}

func (e *Engine) tryResume(ctx context.Context) {
	cp, err := e.repo.LoadCheckpoint(ctx)
	if err != nil {
		e.logger.Warn("failed to read checkpoint, not resuming: %v", err)
		return
	}
	if !cp.Resumable(len(e.actions)) {
		return
	}

	e.mu.Lock()
	for i := 0; i <= cp.LastCompletedStepIndex && i < len(e.actions); i++ {
		e.completed[i] = struct{}{}
	}
	e.pending = true
	e.generation++
	gen := e.generation
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	from := cp.NextStepIndex
	e.logger.Info("resuming workflow at step %d of %d", from+1, len(e.actions))

	go func() {
		defer e.wg.Done()
		if err := sleep(runCtx, e.resumeDelay); err != nil {
			e.abandon(gen)
			return
		}

		e.mu.Lock()
		if e.generation != gen {
			e.mu.Unlock()
			return
		}
		e.pending = false
		e.running = true
		e.mu.Unlock()

		e.notify(runCtx, EventRunResumed, from, workflow.Action{}, nil)
		e.run(runCtx, gen, from)
	}()
}

// Start runs the workflow from index from. It returns false without doing
// anything while a run is in progress or a resume is pending, or when from
// is negative.
func (e *Engine) Start(ctx context.Context, from int) bool {
	if from < 0 {
		return false
	}

	e.persistMu.Lock()
	e.mu.Lock()
	if e.running || e.pending {
		e.mu.Unlock()
		e.persistMu.Unlock()
		return false
	}
	e.generation++
	gen := e.generation
	e.completed = make(map[int]struct{})
	e.running = true
	e.current = -1
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.wg.Add(1)
	e.mu.Unlock()

	if err := e.repo.ClearCheckpoint(ctx); err != nil {
		e.logger.Warn("failed to clear checkpoint before start: %v", err)
	}
	e.persistMu.Unlock()

	e.notify(runCtx, EventRunStarted, from, workflow.Action{}, nil)
	go func() {
		defer e.wg.Done()
		e.run(runCtx, gen, from)
	}()
	return true
}

// Reset forgets all run state, stops an in-flight or pending run at its next
// step boundary and deletes the checkpoint. The button is left as it is.
func (e *Engine) Reset(ctx context.Context) error {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.current = -1
	e.running = false
	e.pending = false
	e.completed = make(map[int]struct{})
	e.mu.Unlock()

	return e.repo.ClearCheckpoint(ctx)
}

// Wait blocks until no run is executing or pending.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Snapshot returns the current runtime state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	completed := make([]int, 0, len(e.completed))
	for i := range e.completed {
		completed = append(completed, i)
	}
	slices.Sort(completed)

	return State{
		CurrentStep: e.current,
		Running:     e.running,
		Pending:     e.pending,
		Completed:   completed,
		Total:       len(e.actions),
	}
}

// Button returns the button the engine modifies.
func (e *Engine) Button() *Button {
	return e.button
}

func (e *Engine) run(ctx context.Context, gen uint64, from int) {
	defer e.release(gen)

	for i := from; i < len(e.actions); i++ {
		action := e.actions[i]

		done, live := e.enter(gen, i)
		if !live {
			return
		}
		if done {
			e.notify(ctx, EventStepSkipped, i, action, nil)
			continue
		}

		if err := sleep(ctx, e.pacing); err != nil {
			e.abandon(gen)
			return
		}
		if !e.live(gen) {
			return
		}

		e.notify(ctx, EventStepStarted, i, action, nil)
		cont, err := e.execute(ctx, step{index: i, gen: gen, action: action})
		if err != nil {
			e.logger.Error("step %d (%s) failed: %v", i+1, action.Kind, err)
			e.fail(gen)
			e.notify(ctx, EventStepFailed, i, action, err)
			return
		}
		if !cont {
			e.notify(ctx, EventStepStopped, i, action, nil)
			return
		}

		ok, err := e.complete(ctx, gen, i)
		if !ok {
			return
		}
		if err != nil {
			e.logger.Warn("failed to save checkpoint after step %d: %v", i+1, err)
		}
		e.notify(ctx, EventStepCompleted, i, action, nil)
	}

	if e.finish(ctx, gen) {
		e.notify(ctx, EventRunCompleted, len(e.actions), workflow.Action{}, nil)
	}
}

// enter records index as the current step. done reports that the step was
// completed by an earlier run; live is false once the run was superseded.
func (e *Engine) enter(gen uint64, index int) (done, live bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen {
		return false, false
	}
	e.current = index
	_, done = e.completed[index]
	return done, true
}

func (e *Engine) live(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation == gen
}

// complete marks index done and writes its checkpoint. ok is false when the
// run was superseded, in which case nothing is written.
func (e *Engine) complete(ctx context.Context, gen uint64, index int) (ok bool, err error) {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		return false, nil
	}
	e.completed[index] = struct{}{}
	e.mu.Unlock()

	return true, e.repo.SaveCheckpoint(ctx, workflow.CheckpointAfter(index, len(e.actions)))
}

// fail clears Running after a step error. Unlike a stop, the engine stays
// mounted, so the user must be able to click again to retry.
func (e *Engine) fail(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation == gen {
		e.running = false
	}
}

func (e *Engine) finish(ctx context.Context, gen uint64) bool {
	e.persistMu.Lock()
	defer e.persistMu.Unlock()

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		return false
	}
	e.running = false
	e.current = -1
	e.mu.Unlock()

	total := len(e.actions)
	if err := e.repo.SaveCheckpoint(ctx, workflow.CheckpointAfter(total-1, total)); err != nil {
		e.logger.Warn("failed to save final checkpoint: %v", err)
	}
	e.logger.Info("workflow completed (%d steps)", total)
	return true
}

// abandon clears the running and pending flags of a run whose context
// ended before it finished.
func (e *Engine) abandon(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen {
		return
	}
	e.logger.Info("workflow run cancelled at step %d", e.current+1)
	e.running = false
	e.pending = false
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// release drops the run context once the loop has returned.
func (e *Engine) release(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation == gen && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
