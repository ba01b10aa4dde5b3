// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/util"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// SlugConflictError reports a slug value already registered to another record.
type SlugConflictError struct {
	Kind  string
	Value string
}

func (e *SlugConflictError) Error() string {
	return fmt.Sprintf("slug %q already registered for %s", e.Value, e.Kind)
}

// IsUniqueViolation reports whether err is a unique or primary key violation
// from any supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var modernErr *msqlite.Error
	if errors.As(err, &modernErr) {
		switch modernErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	var mattnErr sqlite3.Error
	if errors.As(err, &mattnErr) {
		switch mattnErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return true
		}
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// slugColumn validates a slug field name before it is used as a column.
func slugColumn(field slugs.Field) (string, error) {
	for _, f := range slugs.Fields() {
		if f == field {
			return string(f), nil
		}
	}
	return "", fmt.Errorf("unknown slug field %q", field)
}

// SlugTaken reports whether value is stored in any slug column of a record of
// kind other than excludeID.
func (q *Queries) SlugTaken(ctx context.Context, kind *slugs.Kind, value string, excludeID int64) (bool, error) {
	query := `SELECT 1 FROM ` + kind.Table + `
		WHERE id <> ? AND (slug = ? OR slug_en = ? OR slug_tr = ?)
		LIMIT 1`

	var one int
	err := q.db.QueryRowContext(ctx, query, excludeID, value, value, value).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PersistedSlugs returns the stored slugs of a record.
func (q *Queries) PersistedSlugs(ctx context.Context, kind *slugs.Kind, id int64) (slugs.Set, error) {
	query := `SELECT slug, slug_en, slug_tr FROM ` + kind.Table + ` WHERE id = ?`

	var slug, slugEN, slugTR sql.NullString
	err := q.db.QueryRowContext(ctx, query, id).Scan(&slug, &slugEN, &slugTR)
	if errors.Is(err, sql.ErrNoRows) {
		return slugs.Set{}, slugs.ErrNotFound
	}
	if err != nil {
		return slugs.Set{}, err
	}
	return slugsFromNull(slug, slugEN, slugTR), nil
}

// FindBySlugField returns the id of the record whose field equals value.
func (q *Queries) FindBySlugField(ctx context.Context, kind *slugs.Kind, field slugs.Field, value string) (int64, error) {
	column, err := slugColumn(field)
	if err != nil {
		return 0, err
	}

	var id int64
	err = q.db.QueryRowContext(ctx, `SELECT id FROM `+kind.Table+` WHERE `+column+` = ?`, value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, slugs.ErrNotFound
	}
	return id, err
}

// FindByAnySlug returns the id of the record holding value in any slug column.
func (q *Queries) FindByAnySlug(ctx context.Context, kind *slugs.Kind, value string) (int64, error) {
	query := `SELECT id FROM ` + kind.Table + `
		WHERE slug = ? OR slug_en = ? OR slug_tr = ?
		ORDER BY id
		LIMIT 1`

	var id int64
	err := q.db.QueryRowContext(ctx, query, value, value, value).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, slugs.ErrNotFound
	}
	return id, err
}

// SyncSlugRegistry replaces the registry rows of a record with the values in
// set. A value registered to another record yields *SlugConflictError.
func (q *Queries) SyncSlugRegistry(ctx context.Context, kind *slugs.Kind, id int64, set slugs.Set) error {
	if err := q.DeleteSlugRegistry(ctx, kind, id); err != nil {
		return err
	}

	seen := make(map[string]bool, 3)
	for _, f := range slugs.Fields() {
		value := set.Get(f)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true

		_, err := q.db.ExecContext(ctx,
			`INSERT INTO slug_registry (kind, value, entity_id) VALUES (?, ?, ?)`,
			kind.Name, value, id,
		)
		if IsUniqueViolation(err) {
			return &SlugConflictError{Kind: kind.Name, Value: value}
		}
		if err != nil {
			return fmt.Errorf("registering slug %q: %w", value, err)
		}
	}
	return nil
}

// DeleteSlugRegistry removes the registry rows of a record.
func (q *Queries) DeleteSlugRegistry(ctx context.Context, kind *slugs.Kind, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM slug_registry WHERE kind = ? AND entity_id = ?`,
		kind.Name, id,
	)
	return err
}

// RegisteredSlugs returns the registry values of a record.
func (q *Queries) RegisteredSlugs(ctx context.Context, kind *slugs.Kind, id int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT value FROM slug_registry WHERE kind = ? AND entity_id = ? ORDER BY value`,
		kind.Name, id,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func slugArgs(set slugs.Set) []any {
	return []any{
		util.NullStringFromValue(set.Slug),
		util.NullStringFromValue(set.EN),
		util.NullStringFromValue(set.TR),
	}
}

func slugsFromNull(slug, en, tr sql.NullString) slugs.Set {
	return slugs.Set{
		Slug: util.StringFromNull(slug),
		EN:   util.StringFromNull(en),
		TR:   util.StringFromNull(tr),
	}
}

var _ slugs.Store = (*Queries)(nil)
