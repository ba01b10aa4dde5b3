// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

func plainTextPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		strictPolicy.AddSpaceWhenStrippingTag(true)
	})
	return strictPolicy
}

// StripTags converts rich editor HTML into plain text. Entities are decoded,
// non-breaking spaces count as spaces and whitespace runs collapse to one space.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(plainTextPolicy().Sanitize(s))
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.Join(strings.Fields(text), " ")
}

// HasVisibleText reports whether s contains any text once markup is removed.
func HasVisibleText(s string) bool {
	return StripTags(s) != ""
}

// TruncateRunes shortens s to at most maxRunes runes.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}
