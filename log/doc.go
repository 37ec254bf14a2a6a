// Package log provides the leveled logging interface used across clickflow.
//
// The default backend is kataras/golog. Packages log through a Logger value
// they were handed, or through a component logger obtained with Component,
// which prefixes every message with the component name:
//
//	logger := log.Component("engine")
//	logger.Info("resuming workflow from step %d", next)
//
// # Log Levels
//
//   - LogLevelDebug: step-by-step execution detail
//   - LogLevelInfo: run lifecycle (started, resumed, completed)
//   - LogLevelWarn: recovered problems such as corrupt persisted data or unknown action kinds
//   - LogLevelError: failed steps and store errors
//   - LogLevelNone: disables output
//
// ParseLevel maps the textual levels accepted by the configuration
// ("debug", "info", "warn", "error", "none") to a LogLevel.
package log
