// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package slugs

import "strings"

// SupportedLanguages is the fixed set of languages carrying their own slug field,
// in the order they are processed.
var SupportedLanguages = []string{"en", "tr"}

// Field names a slug column.
type Field string

// FieldDefault is the untranslated slug column.
const FieldDefault Field = "slug"

// FieldFor returns the slug column of a language.
func FieldFor(lang string) Field {
	return Field("slug_" + lang)
}

// Fields returns every slug column in fixed order: slug, slug_en, slug_tr.
func Fields() []Field {
	fields := make([]Field, 0, len(SupportedLanguages)+1)
	fields = append(fields, FieldDefault)
	for _, lang := range SupportedLanguages {
		fields = append(fields, FieldFor(lang))
	}
	return fields
}

// IsSupported reports whether lang has its own slug field.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// NormalizeLang lowercases and trims a language code.
func NormalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// Set holds the slug fields of one record.
type Set struct {
	Slug string `json:"slug"`
	EN   string `json:"slug_en"`
	TR   string `json:"slug_tr"`
}

// Get returns the value of a slug field. Unknown fields are empty.
func (s Set) Get(f Field) string {
	switch f {
	case FieldDefault:
		return s.Slug
	case FieldFor("en"):
		return s.EN
	case FieldFor("tr"):
		return s.TR
	}
	return ""
}

// Put sets the value of a slug field. Unknown fields are ignored.
func (s *Set) Put(f Field, value string) {
	switch f {
	case FieldDefault:
		s.Slug = value
	case FieldFor("en"):
		s.EN = value
	case FieldFor("tr"):
		s.TR = value
	}
}

// Lang returns the slug of a language.
func (s Set) Lang(lang string) string {
	return s.Get(FieldFor(lang))
}

// Values returns the non-empty slug values keyed by field.
func (s Set) Values() map[Field]string {
	values := make(map[Field]string, 3)
	for _, f := range Fields() {
		if v := s.Get(f); v != "" {
			values[f] = v
		}
	}
	return values
}

// Text holds a translatable text: the untranslated base value and its
// per-language variants.
type Text struct {
	Base string `json:"base"`
	EN   string `json:"en"`
	TR   string `json:"tr"`
}

// Lang returns the variant of a language, or "" for unsupported languages.
func (t Text) Lang(lang string) string {
	switch lang {
	case "en":
		return t.EN
	case "tr":
		return t.TR
	}
	return ""
}

// LangOrBase returns the variant of a language, falling back to Base.
func (t Text) LangOrBase(lang string) string {
	if v := t.Lang(lang); strings.TrimSpace(v) != "" {
		return v
	}
	return t.Base
}

// SetLang sets the variant of a language.
func (t *Text) SetLang(lang, value string) {
	switch lang {
	case "en":
		t.EN = value
	case "tr":
		t.TR = value
	}
}
