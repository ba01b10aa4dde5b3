// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists blog posts, categories, products, the slug registry
// and the event log in SQLite or MySQL.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver, registered as "sqlite3"
	_ "modernc.org/sqlite"          // pure Go SQLite driver, registered as "sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/mysql/*.sql
var migrations embed.FS

// Supported database drivers.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3
	DriverMySQL   = "mysql"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	Driver string
	// Path is the SQLite database file.
	Path string
	// DSN is the MySQL data source name.
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults for a SQLite file.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		Driver:          DriverSQLite,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// Open opens and pings a database connection pool.
// SQLite write transactions take the write lock at BEGIN so that a slug lookup
// and the following insert cannot interleave with another writer.
func Open(cfg DBConfig) (*sql.DB, error) {
	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func dataSourceName(cfg DBConfig) (string, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.Path) == "" {
			return "", errors.New("database path is required")
		}
		return "file:" + filepath.Clean(cfg.Path) +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=busy_timeout(5000)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=foreign_keys(1)" +
			"&_time_format=sqlite" +
			"&_txlock=immediate", nil
	case DriverSQLite3:
		if strings.TrimSpace(cfg.Path) == "" {
			return "", errors.New("database path is required")
		}
		return "file:" + filepath.Clean(cfg.Path) +
			"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on&_txlock=immediate", nil
	case DriverMySQL:
		mc, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("parsing mysql dsn: %w", err)
		}
		mc.ParseTime = true
		mc.Loc = time.UTC
		return mc.FormatDSN(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate runs all pending database migrations for driver.
func Migrate(db *sql.DB, driver string) error {
	dialect, dir := "sqlite3", "migrations/sqlite"
	if driver == DriverMySQL {
		dialect, dir = "mysql", "migrations/mysql"
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the application's statements against a DBTX.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
// If fn panics, the transaction is rolled back and the panic is re-raised.
// If fn succeeds, the transaction is committed.
func WithTx(ctx context.Context, db *sql.DB, fn func(q *Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(New(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
