// Package sqlite provides a SQLite-backed implementation of store.Store.
//
// Values live in a single two-column table (default name "kv"), created on
// first use. SQLite suits the single-user, single-machine deployment the
// clickflow CLI targets: one file holds the workflow, its checkpoint and
// every key the workflow writes.
//
// # Basic Usage
//
//	kv, err := sqlite.NewSqliteStore(sqlite.SqliteOptions{
//		Path: "./clickflow.db",
//	})
//	if err != nil {
//		return err
//	}
//	defer kv.Close()
//
//	repo := workflow.NewRepository(kv)
package sqlite
