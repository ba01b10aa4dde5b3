// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/seo"
	"github.com/atadizayn/atasite/internal/slugs"
)

// Response is the envelope of public JSON pages.
type Response struct {
	Data any       `json:"data"`
	SEO  *seo.Meta `json:"seo,omitempty"`
}

// logAndInternalError logs an error and writes a 500 JSON response.
func logAndInternalError(w http.ResponseWriter, lang, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	writeJSONError(w, http.StatusInternalServerError, "internal_error", i18n.T(lang, "error.internal"))
}

// writeNotFound writes a localized 404 JSON response for an entity
// ("blog_post", "category", "product" or "page").
func writeNotFound(w http.ResponseWriter, lang, entity string) {
	writeJSONError(w, http.StatusNotFound, "not_found",
		i18n.T(lang, "error.not_found", i18n.T(lang, "entity."+entity)))
}

// handleLookupError answers a failed slug lookup: not-found errors become
// 404, anything else 500.
func handleLookupError(w http.ResponseWriter, r *http.Request, lang, entity string, err error) {
	if errors.Is(err, slugs.ErrNotFound) {
		writeNotFound(w, lang, entity)
		return
	}
	logAndInternalError(w, lang, "failed to resolve "+entity, "error", err, "path", r.URL.Path)
}

// redirectPermanent answers 301 to target, keeping the query string.
func redirectPermanent(w http.ResponseWriter, r *http.Request, target string) {
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
