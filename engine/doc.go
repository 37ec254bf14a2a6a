// Package engine replays a workflow one action at a time and survives the
// host being torn down in the middle of a run.
//
// An Engine walks an ordered list of workflow.Action values. Every step
// waits for a fixed pacing delay, runs its side effect through the Sinks,
// the Host or the Button, and then writes a workflow.Checkpoint to the
// repository. Steps of kind refreshPage and closeWindow mark themselves
// completed, persist the checkpoint and then ask the Host to reload or
// close; the run stops there.
//
// A fresh Engine built over the same repository finds the incomplete
// checkpoint and, after a short resume delay, continues with the next
// step. This is how a reload looks from the engine's side: the old
// instance is discarded and a new one picks up where it left off.
//
// # Example
//
//	repo := workflow.NewRepository(memory.NewMemoryStore())
//	eng := engine.New(ctx, cfg.Actions,
//		engine.WithRepository(repo),
//		engine.WithSinks(screen),
//		engine.WithHost(host),
//		engine.WithListener(engine.ListenerFunc(func(ctx context.Context, ev engine.Event, index int, action workflow.Action, err error) {
//			fmt.Println(ev, index, action.Kind)
//		})),
//	)
//
//	eng.Start(ctx, 0)
//	eng.Wait()
package engine
