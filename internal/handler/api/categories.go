// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/atadizayn/atasite/internal/model"
)

func (h *Handler) categories() resource[model.Category] {
	return resource[model.Category]{
		entity:   model.CategoryKind.Name,
		get:      h.content.GetCategory,
		save:     h.content.SaveCategory,
		validate: h.content.ValidateCategory,
		remove:   h.content.DeleteCategory,
		setID:    func(c *model.Category, id int64) { c.ID = id },
	}
}

// ListCategories handles GET /api/v1/categories?collection=.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.content.ListCategories(r.Context(), r.URL.Query().Get("collection"))
	if err != nil {
		h.writeServiceError(w, r, model.CategoryKind.Name, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	WriteSuccess(w, categories, &Meta{Total: len(categories)})
}

// GetCategory handles GET /api/v1/categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	h.categories().handleGet(h, w, r)
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.categories().handleCreate(h, w, r)
}

// UpdateCategory handles PUT /api/v1/categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.categories().handleUpdate(h, w, r)
}

// ValidateCategory handles POST /api/v1/categories/validate.
func (h *Handler) ValidateCategory(w http.ResponseWriter, r *http.Request) {
	h.categories().handleValidate(h, w, r)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
// Categories that still have products are answered with 409.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.categories().handleDelete(h, w, r)
}
