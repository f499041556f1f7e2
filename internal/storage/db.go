// Package storage opens the embedded sqlite database backing the store and
// applies schema migrations. The database is configured so that several
// short-lived CLI processes can mutate it concurrently: WAL journaling plus
// a busy timeout, with every mutation wrapped in its own transaction by the
// service layer.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the sqlite database at path and brings
// the schema up to date. An empty path opens an in-memory database, used by
// tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := strings.TrimSpace(path)
	inMemory := false
	if dsn == "" || dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		dsn = ":memory:"
		inMemory = true
	} else {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o770); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		// Write transactions take the write lock up front, so concurrent
		// writers queue on the busy timeout instead of failing mid-way.
		dsn = "file:" + dsn + "?_txlock=immediate"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if inMemory {
		// :memory: databases are per-connection; keep a single one.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if !inMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}
