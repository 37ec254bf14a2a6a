package engine

import "context"

// Sinks receive the visible output of a run.
type Sinks interface {
	ShowText(text string)
	ShowImage(url, altText string)
	DisableButton()
}

// SinkFuncs adapts plain functions to Sinks. Nil functions are skipped.
type SinkFuncs struct {
	OnText    func(text string)
	OnImage   func(url, altText string)
	OnDisable func()
}

// ShowText implements Sinks.
func (f SinkFuncs) ShowText(text string) {
	if f.OnText != nil {
		f.OnText(text)
	}
}

// ShowImage implements Sinks.
func (f SinkFuncs) ShowImage(url, altText string) {
	if f.OnImage != nil {
		f.OnImage(url, altText)
	}
}

// DisableButton implements Sinks.
func (f SinkFuncs) DisableButton() {
	if f.OnDisable != nil {
		f.OnDisable()
	}
}

// Host is the environment the run executes in. Alert and Prompt block until
// the user answers. Reload and Close tear the host down; after either
// returns the engine does nothing further.
type Host interface {
	Alert(ctx context.Context, message string) error
	// Prompt returns the entered text and false when the user gave no input.
	Prompt(ctx context.Context, message string) (string, bool, error)
	Reload(ctx context.Context) error
	Close(ctx context.Context) error
}

// NopHost is a Host without a user: alerts are dropped, prompts get no
// input and teardown requests are ignored.
type NopHost struct{}

func (NopHost) Alert(context.Context, string) error { return nil }

func (NopHost) Prompt(context.Context, string) (string, bool, error) { return "", false, nil }

func (NopHost) Reload(context.Context) error { return nil }

func (NopHost) Close(context.Context) error { return nil }
