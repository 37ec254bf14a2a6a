// Package store defines the key-value persistence abstraction that backs a
// clickflow workflow: the saved configuration, the execution checkpoint and
// any keys written by setLocalStorage actions all live in one flat string
// namespace, the way a browser's localStorage does.
//
// Backends:
//   - store/memory: process-local map, for tests and throwaway runs
//   - store/file: one file per key under a directory (viant/afs)
//   - store/sqlite: a single table in a SQLite database
//   - store/redis: string keys under a configurable prefix
//   - store/postgres: a single table reached through a pgx pool
//
// All backends report a missing key with ErrNotFound and treat deleting a
// missing key as a no-op.
package store
