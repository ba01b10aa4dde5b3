// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/atadizayn/atasite/internal/model"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// ListEvents handles GET /api/v1/events?limit=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := h.events.Recent(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, "event", err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	WriteSuccess(w, events, &Meta{Total: len(events)})
}
