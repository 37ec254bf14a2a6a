package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/smallnest/clickflow/engine"
	"github.com/smallnest/clickflow/workflow"
)

// Progress is an engine.Listener that prints one line per step event.
type Progress struct {
	out    io.Writer
	styles Styles
	total  int

	mu sync.Mutex
}

// NewProgress creates a progress printer for a workflow of total steps.
func NewProgress(out io.Writer, styles Styles, total int) *Progress {
	return &Progress{out: out, styles: styles, total: total}
}

// OnEvent implements engine.Listener.
func (p *Progress) OnEvent(_ context.Context, event engine.Event, index int, action workflow.Action, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step := fmt.Sprintf("[%d/%d]", index+1, p.total)
	switch event {
	case engine.EventRunStarted:
		fmt.Fprintln(p.out, p.styles.Title.Render(fmt.Sprintf("running from step %d", index+1)))
	case engine.EventRunResumed:
		fmt.Fprintln(p.out, p.styles.Title.Render(fmt.Sprintf("resuming at step %d", index+1)))
	case engine.EventStepStarted:
		fmt.Fprintf(p.out, "%s %s\n", p.styles.Muted.Render(step), action.Kind)
	case engine.EventStepSkipped:
		fmt.Fprintf(p.out, "%s %s %s\n", p.styles.Muted.Render(step), action.Kind, p.styles.Muted.Render("(already done)"))
	case engine.EventStepFailed:
		fmt.Fprintf(p.out, "%s %s %s\n", p.styles.Muted.Render(step), action.Kind, p.styles.Error.Render("failed: "+errText(err)))
	case engine.EventRunCompleted:
		fmt.Fprintln(p.out, p.styles.Success.Render("workflow completed"))
	}
}

// Status renders the engine state as one line.
func Status(styles Styles, state engine.State) string {
	switch {
	case state.Pending:
		return styles.Muted.Render("resume pending")
	case state.Running && state.CurrentStep >= 0:
		return styles.Title.Render(fmt.Sprintf("running step %d of %d", state.CurrentStep+1, state.Total))
	case state.Running:
		return styles.Title.Render("running")
	case state.Total > 0 && len(state.Completed) == state.Total:
		return styles.Success.Render(fmt.Sprintf("completed %d of %d steps", state.Total, state.Total))
	default:
		return styles.Muted.Render(fmt.Sprintf("idle, %d of %d steps completed", len(state.Completed), state.Total))
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
