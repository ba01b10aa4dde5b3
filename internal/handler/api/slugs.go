// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/service"
	"github.com/atadizayn/atasite/internal/slugs"
)

// PreviewSlugRequest is the body of POST /api/v1/slugs/preview.
type PreviewSlugRequest struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	ExcludeID int64  `json:"exclude_id"`
}

// PreviewSlugResponse is the slug a record with the given text would get.
type PreviewSlugResponse struct {
	Derived  string `json:"derived"`
	Slug     string `json:"slug"`
	Reserved bool   `json:"reserved"`
	Hint     string `json:"hint"`
}

// PreviewSlug handles POST /api/v1/slugs/preview.
func (h *Handler) PreviewSlug(w http.ResponseWriter, r *http.Request) {
	lang := h.requestLang(r)

	var req PreviewSlugRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	kind := model.KindByName(strings.TrimSpace(req.Kind))
	if kind == nil {
		verr := slugs.NewValidationError("slug_preview")
		verr.Add("kind", service.MsgChoiceInvalid)
		WriteValidationError(w, verr, lang)
		return
	}

	derived, unique, err := h.content.PreviewSlug(r.Context(), kind, req.Text, req.ExcludeID)
	if err != nil {
		h.writeServiceError(w, r, kind.Name, err)
		return
	}

	WriteSuccess(w, PreviewSlugResponse{
		Derived:  derived,
		Slug:     unique,
		Reserved: h.content.Resolver().IsReserved(unique),
		Hint:     i18n.T(lang, "hint.slug"),
	}, nil)
}
