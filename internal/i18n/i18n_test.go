// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if TranslationCount("en") == 0 {
		t.Error("Expected English translations to be loaded")
	}
	if TranslationCount("tr") == 0 {
		t.Error("Expected Turkish translations to be loaded")
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"en", "validation.slug_reserved", nil, "This slug cannot be used."},
		{"tr", "validation.slug_reserved", nil, "Bu slug kullanılamaz."},
		{"tr", "validation.slug_taken.product", nil, "Bu slug başka bir üründe kullanılıyor."},
		{"en", "validation.source_required", []any{"Turkish"}, "This field is required in Turkish."},
		{"tr", "error.not_found", []any{"Ürün"}, "Ürün bulunamadı"},
		// Unknown language falls back to the default (tr)
		{"de", "validation.slug_reserved", nil, "Bu slug kullanılamaz."},
		// Unknown key returns the key
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			result := T(tt.lang, tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, result, tt.expected)
			}
		})
	}
}

func TestSetDefaultLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { SetDefaultLanguage("tr") })

	SetDefaultLanguage("en")
	if got := DefaultLanguage(); got != "en" {
		t.Fatalf("DefaultLanguage() = %q, want en", got)
	}
	if got := T("de", "validation.slug_reserved"); got != "This slug cannot be used." {
		t.Errorf("fallback after SetDefaultLanguage(en) = %q", got)
	}

	SetDefaultLanguage("xx")
	if got := DefaultLanguage(); got != "en" {
		t.Errorf("unsupported language changed default to %q", got)
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"tr", "tr"},
		{"en-US,en;q=0.9", "en"},
		{"tr-TR,tr;q=0.9,en;q=0.8", "tr"},
		{"de-DE,en;q=0.5", "en"},
		{"de", "tr"},
		{"", "tr"},
		{"!!invalid!!", "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range []string{"tr", "en", "TR"} {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false, want true", lang)
		}
	}
	if IsSupported("ru") {
		t.Error("IsSupported(ru) = true, want false")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	keys := make(map[string]map[string]bool)
	for _, lang := range SupportedLanguages {
		data, err := localesFS.ReadFile(fmt.Sprintf("locales/%s/messages.json", lang))
		if err != nil {
			t.Fatalf("reading %s catalog: %v", lang, err)
		}
		var f MessageFile
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("parsing %s catalog: %v", lang, err)
		}
		keys[lang] = make(map[string]bool)
		for _, m := range f.Messages {
			keys[lang][m.ID] = true
		}
	}

	for key := range keys["en"] {
		if !keys["tr"][key] {
			t.Errorf("key %q missing from tr catalog", key)
		}
	}
	for key := range keys["tr"] {
		if !keys["en"][key] {
			t.Errorf("key %q missing from en catalog", key)
		}
	}
}
