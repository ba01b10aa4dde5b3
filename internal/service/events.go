// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality
// including the content save pipeline and event logging for audit trails.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/store"
)

// EventService provides event logging functionality.
type EventService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		queries: store.New(db),
		logger:  logger,
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("failed to log event", "error", err, "message", message)
		return err
	}
	return nil
}

// LogContentEvent logs an info-level content change.
func (s *EventService) LogContentEvent(ctx context.Context, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryContent, message, metadata)
}

// Recent returns the newest events.
func (s *EventService) Recent(ctx context.Context, limit int) ([]model.Event, error) {
	return s.queries.ListEvents(ctx, limit)
}

// Prune deletes events older than maxAge.
func (s *EventService) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	return s.queries.DeleteEventsBefore(ctx, time.Now().Add(-maxAge))
}
