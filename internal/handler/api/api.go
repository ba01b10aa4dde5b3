// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the admin REST API for blog posts, categories and
// products.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/middleware"
	"github.com/atadizayn/atasite/internal/service"
	"github.com/atadizayn/atasite/internal/slugs"
)

// maxBodyBytes limits admin request bodies.
const maxBodyBytes = 1 << 20

// Route patterns of the admin API.
const (
	RoutePosts      = "/posts"
	RouteCategories = "/categories"
	RouteProducts   = "/products"
	RouteEvents     = "/events"
	RouteSlugs      = "/slugs/preview"
	RouteStatus     = "/status"

	routeSuffixID       = "/{id}"
	routeSuffixValidate = "/validate"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	content *service.ContentService
	events  *service.EventService
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(content *service.ContentService, events *service.EventService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		content: content,
		events:  events,
		logger:  logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 response with the field errors of verr
// rendered in lang.
func WriteValidationError(w http.ResponseWriter, verr *slugs.ValidationError, lang string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error",
		i18n.T(lang, "validation.failed"), verr.Messages(lang))
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
	Default   string   `json:"default_language"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:    "ok",
		Version:   "v1",
		Languages: slugs.SupportedLanguages,
		Default:   h.content.Resolver().DefaultLanguage(),
	}, nil)
}

// requestLang picks the language of messages: ?lang=, then cookie or
// Accept-Language, then the default language.
func (h *Handler) requestLang(r *http.Request) string {
	if q := slugs.NormalizeLang(r.URL.Query().Get("lang")); slugs.IsSupported(q) {
		return q
	}
	return middleware.DetectLanguage(r, h.content.Resolver().DefaultLanguage())
}

// parseID reads the {id} URL parameter. On failure it writes a 400 response.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, i18n.T(h.requestLang(r), "error.invalid_id"))
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v. On failure it writes a
// 400 response.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteBadRequest(w, i18n.T(h.requestLang(r), "error.invalid_json"))
		return false
	}
	return true
}

// writeServiceError maps service errors to responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	lang := h.requestLang(r)

	var verr *slugs.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr, lang)
	case errors.Is(err, slugs.ErrNotFound):
		WriteNotFound(w, i18n.T(lang, "error.not_found", i18n.T(lang, "entity."+entity)))
	case errors.Is(err, service.ErrCategoryInUse):
		WriteError(w, http.StatusConflict, "conflict", i18n.T(lang, "error.category_in_use"), nil)
	default:
		h.logger.Error("admin API request failed", "entity", entity, "method", r.Method, "path", r.URL.Path, "error", err)
		WriteInternalError(w, i18n.T(lang, "error.internal"))
	}
}

// queryBool reports whether a query parameter is set to a true value.
func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(name)))
	return v
}

// crudHandlers defines the standard handler methods of a resource.
type crudHandlers struct {
	List     http.HandlerFunc
	Create   http.HandlerFunc
	Validate http.HandlerFunc
	Get      http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard routes for a resource.
// Routes: GET /, POST /, POST /validate, GET /{id}, PUT /{id}, DELETE /{id}
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Post(base, h.Create)
	r.Post(base+routeSuffixValidate, h.Validate)
	r.Get(base+routeSuffixID, h.Get)
	r.Put(base+routeSuffixID, h.Update)
	r.Delete(base+routeSuffixID, h.Delete)
}

// Routes registers the admin API on r. Authentication is applied by the caller.
func (h *Handler) Routes(r chi.Router) {
	r.Get(RouteStatus, h.Status)
	registerCRUD(r, RoutePosts, crudHandlers{
		List: h.ListPosts, Create: h.CreatePost, Validate: h.ValidatePost,
		Get: h.GetPost, Update: h.UpdatePost, Delete: h.DeletePost,
	})
	registerCRUD(r, RouteCategories, crudHandlers{
		List: h.ListCategories, Create: h.CreateCategory, Validate: h.ValidateCategory,
		Get: h.GetCategory, Update: h.UpdateCategory, Delete: h.DeleteCategory,
	})
	registerCRUD(r, RouteProducts, crudHandlers{
		List: h.ListProducts, Create: h.CreateProduct, Validate: h.ValidateProduct,
		Get: h.GetProduct, Update: h.UpdateProduct, Delete: h.DeleteProduct,
	})
	r.Post(RouteSlugs, h.PreviewSlug)
	r.Get(RouteEvents, h.ListEvents)
}
