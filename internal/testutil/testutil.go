// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the atasite project.
package testutil

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary migrated SQLite database using the cgo driver.
// The database is closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()
	return TestDBWithDriver(t, store.DriverSQLite3)
}

// TestDBWithDriver is TestDB for a specific SQLite driver.
func TestDBWithDriver(t *testing.T, driver string) *sql.DB {
	t.Helper()

	cfg := store.DefaultDBConfig()
	cfg.Driver = driver
	cfg.Path = filepath.Join(t.TempDir(), "atasite-test.db")

	db, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, cfg.Driver); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// InitI18n loads the message catalogs with Turkish as default language.
func InitI18n(t *testing.T) {
	t.Helper()
	if err := i18n.Init(TestLoggerSilent()); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	i18n.SetDefaultLanguage("tr")
}
