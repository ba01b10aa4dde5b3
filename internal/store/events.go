// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/atadizayn/atasite/internal/model"
)

// CreateEventParams holds the columns of a new event.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now()
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt.UTC(),
	)
	return err
}

// ListEvents returns the newest events first.
func (q *Queries) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, level, category, message, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEventsBefore removes events older than cutoff.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
