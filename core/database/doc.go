// Package database keeps the invocation history.
//
// It provides a wrapper around GORM to open MySQL (production) or sqlite
// (local runs and tests) connections based on the application's configuration,
// and a History recorder that stores one row per module invocation.
//
// # Schema Verification
//
// After migration the history table's columns are inspected directly
// (SHOW COLUMNS or PRAGMA table_info) so a table created by an older version
// is reported instead of silently dropping fields.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	history := database.NewHistory(db)
//	_ = history.Migrate(ctx)
//	engine := reconcile.NewEngine(awaiter, reconcile.WithObservers(history))
package database
