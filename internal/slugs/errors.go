// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package slugs

import (
	"errors"
	"sort"
	"strings"

	"github.com/atadizayn/atasite/internal/i18n"
)

// ErrNotFound is returned when no record matches a slug.
var ErrNotFound = errors.New("slug not found")

// Message keys used in validation errors.
const (
	MsgSourceRequired   = "validation.source_required"
	MsgContentRequired  = "validation.content_required"
	MsgContentOrSummary = "validation.content_or_summary"
	MsgSlugReserved     = "validation.slug_reserved"
	MsgSlugRequired     = "validation.slug_required"
	MsgSlugInvalid      = "validation.slug_invalid"
	MsgSlugTakenPrefix  = "validation.slug_taken."
)

// FieldError is a translatable message attached to one field. Args are
// translated too; an arg without a catalog entry is used verbatim.
type FieldError struct {
	Key  string   `json:"key"`
	Args []string `json:"args,omitempty"`
}

// ValidationError collects every failed check of one save, keyed by field.
type ValidationError struct {
	Kind   string
	Fields map[string]FieldError
}

// NewValidationError returns an empty error for kind.
func NewValidationError(kind string) *ValidationError {
	return &ValidationError{Kind: kind, Fields: make(map[string]FieldError)}
}

// Add attaches a message to field. The first message for a field wins.
func (e *ValidationError) Add(field, key string, args ...string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = FieldError{Key: key, Args: args}
}

// Has reports whether field has an error.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Len returns the number of failing fields.
func (e *ValidationError) Len() int {
	return len(e.Fields)
}

// FieldNames returns the failing fields sorted.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	return "validation failed for " + e.Kind + ": " + strings.Join(e.FieldNames(), ", ")
}

// Messages renders every field error in lang.
func (e *ValidationError) Messages(lang string) map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, fe := range e.Fields {
		args := make([]any, len(fe.Args))
		for i, a := range fe.Args {
			args[i] = i18n.T(lang, a)
		}
		out[field] = i18n.T(lang, fe.Key, args...)
	}
	return out
}

// Err returns e as an error, or nil when no field failed.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Merge copies the field errors of other that e does not have yet.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, fe := range other.Fields {
		if !e.Has(field) {
			e.Fields[field] = fe
		}
	}
}
