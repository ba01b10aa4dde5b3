// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/model"
)

func (h *Handler) products() resource[model.Product] {
	return resource[model.Product]{
		entity:   model.ProductKind.Name,
		get:      h.content.GetProduct,
		save:     h.content.SaveProduct,
		validate: h.content.ValidateProduct,
		remove:   h.content.DeleteProduct,
		setID:    func(p *model.Product, id int64) { p.ID = id },
	}
}

// ListProducts handles GET /api/v1/products?category_id=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID int64
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			WriteBadRequest(w, i18n.T(h.requestLang(r), "error.invalid_id"))
			return
		}
		categoryID = id
	}

	products, err := h.content.ListProducts(r.Context(), categoryID)
	if err != nil {
		h.writeServiceError(w, r, model.ProductKind.Name, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	WriteSuccess(w, products, &Meta{Total: len(products)})
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	h.products().handleGet(h, w, r)
}

// CreateProduct handles POST /api/v1/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.products().handleCreate(h, w, r)
}

// UpdateProduct handles PUT /api/v1/products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.products().handleUpdate(h, w, r)
}

// ValidateProduct handles POST /api/v1/products/validate.
func (h *Handler) ValidateProduct(w http.ResponseWriter, r *http.Request) {
	h.products().handleValidate(h, w, r)
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.products().handleDelete(h, w, r)
}
