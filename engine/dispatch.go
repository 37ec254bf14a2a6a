package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/smallnest/clickflow/catalog"
	"github.com/smallnest/clickflow/workflow"
)

// step is one action being executed by a run.
type step struct {
	index  int
	gen    uint64
	action workflow.Action
}

func (s step) params() workflow.Params {
	if s.action.Params == nil {
		return workflow.Params{}
	}
	return s.action.Params
}

// stepFunc performs one action. It returns false when the run must stop
// because the host is being torn down.
type stepFunc func(ctx context.Context, s step) (bool, error)

func (e *Engine) dispatchTable() map[string]stepFunc {
	return map[string]stepFunc{
		catalog.Alert:              e.alert,
		catalog.ShowText:           e.showText,
		catalog.ShowImage:          e.showImage,
		catalog.RefreshPage:        e.refreshPage,
		catalog.SetLocalStorage:    e.setItem,
		catalog.GetLocalStorage:    e.getItem,
		catalog.IncreaseButtonSize: e.growButton,
		catalog.CloseWindow:        e.closeWindow,
		catalog.PromptAndShow:      e.promptAndShow,
		catalog.ChangeButtonColor:  e.recolorButton,
		catalog.DisableButton:      e.disableButton,
	}
}

// execute runs the handler for the step's kind. Unknown kinds are skipped
// and panics are turned into errors.
func (e *Engine) execute(ctx context.Context, s step) (cont bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			cont, err = false, fmt.Errorf("panic: %v", r)
		}
	}()

	handler, ok := e.handlers[s.action.Kind]
	if !ok {
		e.logger.Warn("unknown action type %q at step %d, skipping", s.action.Kind, s.index+1)
		return true, nil
	}
	return handler(ctx, s)
}

func (e *Engine) alert(ctx context.Context, s step) (bool, error) {
	if err := e.host.Alert(ctx, s.params().String("message", "Alert!")); err != nil {
		return false, fmt.Errorf("alert: %w", err)
	}
	return true, nil
}

func (e *Engine) showText(_ context.Context, s step) (bool, error) {
	if e.sinks != nil {
		e.sinks.ShowText(s.params().String("text", ""))
	}
	return true, nil
}

func (e *Engine) showImage(_ context.Context, s step) (bool, error) {
	if e.sinks != nil {
		p := s.params()
		e.sinks.ShowImage(p.String("url", ""), p.String("altText", ""))
	}
	return true, nil
}

func (e *Engine) refreshPage(ctx context.Context, s step) (bool, error) {
	if live, err := e.persistBeforeTeardown(ctx, s); !live || err != nil {
		return false, err
	}
	e.logger.Info("step %d requests a reload", s.index+1)
	if err := e.host.Reload(ctx); err != nil {
		return false, fmt.Errorf("reload: %w", err)
	}
	return false, nil
}

func (e *Engine) closeWindow(ctx context.Context, s step) (bool, error) {
	if live, err := e.persistBeforeTeardown(ctx, s); !live || err != nil {
		return false, err
	}
	e.logger.Info("step %d requests the window to close", s.index+1)
	if err := e.host.Close(ctx); err != nil {
		e.logger.Warn("close was refused: %v", err)
	}
	return false, nil
}

// persistBeforeTeardown marks the step completed and writes its checkpoint
// so the next engine continues after it. A failed write fails the step.
func (e *Engine) persistBeforeTeardown(ctx context.Context, s step) (bool, error) {
	live, err := e.complete(ctx, s.gen, s.index)
	if err != nil {
		return live, fmt.Errorf("save checkpoint before teardown: %w", err)
	}
	return live, nil
}

func (e *Engine) setItem(ctx context.Context, s step) (bool, error) {
	p := s.params()
	if !p.Has("key") {
		return true, nil
	}
	if err := e.repo.SetItem(ctx, p.String("key", ""), p.String("value", "")); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) getItem(ctx context.Context, s step) (bool, error) {
	p := s.params()
	if !p.Has("key") || e.sinks == nil {
		return true, nil
	}
	key := p.String("key", "")
	value, found, err := e.repo.GetItem(ctx, key)
	if err != nil {
		return false, err
	}
	if !found || value == "" {
		value = "Not found"
	}
	e.sinks.ShowText(key + ": " + value)
	return true, nil
}

func (e *Engine) growButton(_ context.Context, s step) (bool, error) {
	e.button.Grow(s.params().Float("scale", 1.2))
	return true, nil
}

func (e *Engine) promptAndShow(ctx context.Context, s step) (bool, error) {
	if e.sinks == nil {
		return true, nil
	}
	input, ok, err := e.host.Prompt(ctx, s.params().String("promptMessage", "Please enter a value:"))
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	if !ok || input == "" {
		input = "Nothing"
	}
	e.sinks.ShowText("You entered: " + input)
	return true, nil
}

func (e *Engine) recolorButton(_ context.Context, s step) (bool, error) {
	color := s.params().String("color", "")
	if color == "" {
		color = RandomColor()
	}
	e.button.SetColor(color)
	return true, nil
}

func (e *Engine) disableButton(_ context.Context, _ step) (bool, error) {
	if e.sinks != nil {
		e.sinks.DisableButton()
	}
	return true, nil
}

// RandomColor returns a random "#rrggbb" color.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}
