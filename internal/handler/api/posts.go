// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/atadizayn/atasite/internal/model"
)

func (h *Handler) posts() resource[model.BlogPost] {
	return resource[model.BlogPost]{
		entity:   model.BlogPostKind.Name,
		get:      h.content.GetPost,
		save:     h.content.SavePost,
		validate: h.content.ValidatePost,
		remove:   h.content.DeletePost,
		setID:    func(p *model.BlogPost, id int64) { p.ID = id },
	}
}

// ListPosts handles GET /api/v1/posts.
// Query parameters: collection, published (only posts visible now).
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListPosts(r.Context(), r.URL.Query().Get("collection"), queryBool(r, "published"))
	if err != nil {
		h.writeServiceError(w, r, model.BlogPostKind.Name, err)
		return
	}
	if posts == nil {
		posts = []model.BlogPost{}
	}
	WriteSuccess(w, posts, &Meta{Total: len(posts)})
}

// GetPost handles GET /api/v1/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	h.posts().handleGet(h, w, r)
}

// CreatePost handles POST /api/v1/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	h.posts().handleCreate(h, w, r)
}

// UpdatePost handles PUT /api/v1/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	h.posts().handleUpdate(h, w, r)
}

// ValidatePost handles POST /api/v1/posts/validate.
func (h *Handler) ValidatePost(w http.ResponseWriter, r *http.Request) {
	h.posts().handleValidate(h, w, r)
}

// DeletePost handles DELETE /api/v1/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.posts().handleDelete(h, w, r)
}
