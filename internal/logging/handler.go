// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the database-backed event log.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// records at or above its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
	group   string
}

// NewEventLogHandler creates a handler that forwards WARN and above to the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level || h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}
	return c
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.inner = h.inner.WithGroup(name)
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return c
}

func (h *EventLogHandler) clone() *EventLogHandler {
	return &EventLogHandler{
		inner:   h.inner,
		queries: h.queries,
		level:   h.level,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		group:   h.group,
	}
}

func (h *EventLogHandler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

// writeToEventLog stores the record. The request context is not used so that
// the event survives request cancellation; write failures are dropped.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     levelToEventLevel(r.Level),
		Category:  extractCategory(r.Message, attrs),
		Message:   r.Message,
		Metadata:  extractMetadata(attrs),
		CreatedAt: r.Time,
	})
}

// levelToEventLevel converts a slog.Level to an event log level.
func levelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory uses an explicit "category" attribute, otherwise infers one
// from the message.
func extractCategory(msg string, attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == "category" {
			if c := a.Value.String(); c != "" {
				return c
			}
		}
	}

	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "slug"):
		return model.EventCategorySlug
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return model.EventCategoryCache
	case strings.Contains(msg, "post") || strings.Contains(msg, "category") ||
		strings.Contains(msg, "product") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata collects attributes, except category, into a JSON object.
func extractMetadata(attrs []slog.Attr) string {
	meta := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == "category" || a.Key == "" {
			continue
		}
		meta[a.Key] = a.Value.Resolve().String()
	}
	if len(meta) == 0 {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
