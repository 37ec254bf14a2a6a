// Package workflow holds the clickflow data model and its persistence.
//
// A Config is a button label plus an ordered list of Actions; the order is
// the execution order. A Checkpoint records how far the most recent run got
// so a new engine instance can resume after its host was torn down.
//
// Repository persists both documents as JSON in a store.Store under the keys
// ConfigKey and CheckpointKey. Malformed stored data is never an error for
// callers: LoadConfig falls back to DefaultConfig and LoadCheckpoint reports
// no checkpoint, and both log a warning.
package workflow
