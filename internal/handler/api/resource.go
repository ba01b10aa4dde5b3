// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// resource wires the service operations of one record type into the
// generic CRUD handlers below.
type resource[T any] struct {
	entity   string
	get      func(ctx context.Context, id int64) (T, error)
	save     func(ctx context.Context, v *T) error
	validate func(ctx context.Context, v *T) error
	remove   func(ctx context.Context, id int64) error
	setID    func(v *T, id int64)
}

// ValidationResult is the response of a successful validate request.
type ValidationResult[T any] struct {
	Valid  bool `json:"valid"`
	Record T    `json:"record"`
}

func (res resource[T]) handleGet(h *Handler, w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	v, err := res.get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	WriteSuccess(w, v, nil)
}

func (res resource[T]) handleCreate(h *Handler, w http.ResponseWriter, r *http.Request) {
	var v T
	if !h.decodeBody(w, r, &v) {
		return
	}
	res.setID(&v, 0)
	if err := res.save(r.Context(), &v); err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	WriteCreated(w, v)
}

// handleUpdate overlays the request body on the stored record, so omitted
// fields keep their values.
func (res resource[T]) handleUpdate(h *Handler, w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	v, err := res.get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	if !h.decodeBody(w, r, &v) {
		return
	}
	res.setID(&v, id)
	if err := res.save(r.Context(), &v); err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	WriteSuccess(w, v, nil)
}

// handleValidate runs the save checks without persisting. A record with an
// id is validated as an update of that record.
func (res resource[T]) handleValidate(h *Handler, w http.ResponseWriter, r *http.Request) {
	var v T
	if !h.decodeBody(w, r, &v) {
		return
	}
	if err := res.validate(r.Context(), &v); err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	WriteSuccess(w, ValidationResult[T]{Valid: true, Record: v}, nil)
}

func (res resource[T]) handleDelete(h *Handler, w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := res.remove(r.Context(), id); err != nil {
		h.writeServiceError(w, r, res.entity, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
