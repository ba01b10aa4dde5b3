// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
)

func TestNullStringFromValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected sql.NullString
	}{
		{
			name:     "empty string",
			input:    "",
			expected: sql.NullString{},
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: sql.NullString{},
		},
		{
			name:     "slug value",
			input:    "ornek",
			expected: sql.NullString{String: "ornek", Valid: true},
		},
		{
			name:     "surrounding spaces trimmed",
			input:    " widget-2 ",
			expected: sql.NullString{String: "widget-2", Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NullStringFromValue(tt.input)
			if result != tt.expected {
				t.Errorf("NullStringFromValue(%q) = %+v, want %+v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStringFromNull(t *testing.T) {
	if got := StringFromNull(sql.NullString{}); got != "" {
		t.Errorf("StringFromNull(NULL) = %q, want empty", got)
	}
	if got := StringFromNull(sql.NullString{String: "widget", Valid: true}); got != "widget" {
		t.Errorf("StringFromNull(widget) = %q, want %q", got, "widget")
	}
}
