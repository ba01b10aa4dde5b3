// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/store"
	"github.com/atadizayn/atasite/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func listEvents(t *testing.T, q *store.Queries) []model.Event {
	t.Helper()
	events, err := q.ListEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Error("database connection failed", "host", "localhost", "port", 3306)

	events := listEvents(t, store.New(db))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Message != "database connection failed" {
		t.Errorf("Message = %q", events[0].Message)
	}
	if events[0].Category != model.EventCategorySystem {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategorySystem)
	}
}

func TestEventLogHandler_Handle_WarnLevel(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("redis unavailable, using memory cache")

	events := listEvents(t, store.New(db))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelWarning)
	}
	if events[0].Category != model.EventCategoryCache {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryCache)
	}
}

func TestEventLogHandler_Handle_BelowThreshold_NotCaptured(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("server started")
	logger.Debug("resolving slug")

	if events := listEvents(t, store.New(db)); len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestEventLogHandler_Handle_CustomLevel(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))

	logger.Info("post saved")

	events := listEvents(t, store.New(db))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelInfo)
	}
}

func TestEventLogHandler_InnerHandlerReceivesRecords(t *testing.T) {
	db := testutil.TestDB(t)
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(NewEventLogHandler(inner, db))

	logger.Info("listening", "addr", ":8080")
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "listening") || !strings.Contains(out, "addr=:8080") {
		t.Errorf("inner handler output = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("inner handler level should still apply")
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"slug registry conflict", model.EventCategorySlug},
		{"cache invalidation failed", model.EventCategoryCache},
		{"failed to save product", model.EventCategoryContent},
		{"category has products", model.EventCategoryContent},
		{"shutdown timed out", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := extractCategory(tt.msg, nil); got != tt.want {
				t.Errorf("extractCategory(%q) = %q, want %q", tt.msg, got, tt.want)
			}
		})
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("something about a slug", "category", model.EventCategoryCache)

	events := listEvents(t, store.New(db))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryCache {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryCache)
	}
	if strings.Contains(events[0].Metadata, "category") {
		t.Errorf("Metadata should not contain category: %s", events[0].Metadata)
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.With("component", "resolver").WithGroup("req").
		Error("lookup failed", "slug", `a"b\c`, "lang", "tr")

	events := listEvents(t, store.New(db))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v (%s)", err, events[0].Metadata)
	}
	if meta["component"] != "resolver" {
		t.Errorf("component = %q", meta["component"])
	}
	if meta["req.slug"] != `a"b\c` {
		t.Errorf("req.slug = %q", meta["req.slug"])
	}
	if meta["req.lang"] != "tr" {
		t.Errorf("req.lang = %q", meta["req.lang"])
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	if got := extractMetadata(nil); got != "{}" {
		t.Errorf("extractMetadata(nil) = %q, want {}", got)
	}
}

func TestLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}
	for _, tt := range tests {
		if got := levelToEventLevel(tt.level); got != tt.want {
			t.Errorf("levelToEventLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
