// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode transliteration.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugRun matches any run of characters that cannot appear in a slug.
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	// langCodeRegex matches two-letter ISO 639-1 codes.
	langCodeRegex = regexp.MustCompile(`^[a-z]{2}$`)
)

// Slugify converts a string to a URL-friendly slug.
// Accents are stripped, remaining non-ASCII letters are transliterated
// (Turkish ı, ş, ğ become i, s, g), and every run of whitespace or
// punctuation becomes a single hyphen. Input without any letters or digits
// yields an empty string.
func Slugify(s string) string {
	// Decompose and drop combining marks first so "é" folds to "e"
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = nonSlugRun.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	// Check if it only contains lowercase letters, numbers, and hyphens
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	// Check that it doesn't start or end with a hyphen
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	// Check for consecutive hyphens
	if strings.Contains(s, "--") {
		return false
	}

	return true
}

// IsValidLangCode reports whether s is a lowercase two-letter language code.
func IsValidLangCode(s string) bool {
	return langCodeRegex.MatchString(s)
}
