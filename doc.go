// Clickflow - a button that replays a configurable workflow.
//
// Clickflow binds an ordered list of actions to a single button. Clicking the
// button runs the actions one after another with a short pause between them.
// Progress is checkpointed after every step, so an action that reloads the
// page (or a crash) does not lose the run: the next start picks up at the
// step after the last completed one.
//
// # Quick Start
//
// Install the command:
//
//	go install github.com/smallnest/clickflow/cmd/clickflow@latest
//
// Build a workflow and run it:
//
//	clickflow config label "Say hello"
//	clickflow config add showText text="Hello, world"
//	clickflow config add increaseButtonSize scale=1.5
//	clickflow config add refreshPage
//	clickflow config add alert message="Back after the reload"
//	clickflow run --click
//
// The same engine can be embedded directly:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/smallnest/clickflow/catalog"
//		"github.com/smallnest/clickflow/engine"
//		"github.com/smallnest/clickflow/workflow"
//	)
//
//	func main() {
//		ctx := context.Background()
//		eng := engine.New(ctx, []workflow.Action{
//			workflow.NewAction(catalog.ShowText, workflow.Params{"text": "Hello"}),
//			workflow.NewAction(catalog.ChangeButtonColor, workflow.Params{"color": "#ff0000"}),
//		}, engine.WithSinks(engine.SinkFuncs{
//			OnText: func(text string) { fmt.Println(text) },
//		}))
//		eng.Start(ctx, 0)
//		eng.Wait()
//	}
//
// # Package Structure
//
//   - workflow: actions, the button configuration, checkpoints and the
//     repository that persists them
//   - catalog: the fixed set of action types and their parameter fields
//   - engine: the step executor, button state, host and listener interfaces
//   - store: the key-value abstraction with memory, file, sqlite, redis and
//     postgres backends
//   - terminal: a lipgloss screen and a line-based host for the command line
//   - htmlpage: renders the output screen as a standalone HTML page
//   - config: viper-backed settings for the command
//   - cli: the cobra command tree
//   - log: the logger interface and its golog implementation
//
// # Durable Execution
//
// The configuration, the checkpoint and every key written by a
// setLocalStorage action share one store. Pick the backend with
// --store (file, sqlite, redis, postgres or memory) or the
// CLICKFLOW_STORE_BACKEND environment variable.
package clickflow
