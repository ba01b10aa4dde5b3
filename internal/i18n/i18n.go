// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides message catalogs for editor-facing text such as
// validation errors, and Accept-Language matching against the site languages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// SupportedLanguages lists the languages with a message catalog.
// The first entry is the fallback until SetDefaultLanguage is called.
var SupportedLanguages = []string{"tr", "en"}

// Init loads the embedded catalogs.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  SupportedLanguages[0],
		logger:       logger,
	}
	c.setMatcher(SupportedLanguages)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}

	return nil
}

// setMatcher rebuilds the language matcher with def first so that it wins ties.
func (c *Catalog) setMatcher(langs []string) {
	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, language.MustParse(lang))
	}
	c.supported = tags
	c.matcher = language.NewMatcher(tags)
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}

	return nil
}

// SetDefaultLanguage changes the fallback language used for unknown
// languages and missing keys. Unsupported codes are ignored.
func SetDefaultLanguage(lang string) {
	if catalog == nil || !IsSupported(lang) {
		return
	}

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	catalog.defaultLang = strings.ToLower(lang)
	ordered := []string{catalog.defaultLang}
	for _, l := range SupportedLanguages {
		if l != catalog.defaultLang {
			ordered = append(ordered, l)
		}
	}
	catalog.setMatcher(ordered)
}

// DefaultLanguage returns the current fallback language.
func DefaultLanguage() string {
	if catalog == nil {
		return SupportedLanguages[0]
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return catalog.defaultLang
}

// T translates a message key to the specified language.
// If the key is not found, it returns the key itself.
// Supports optional arguments for string formatting.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	translation, ok := catalog.translations[lang][key]
	if !ok && lang != catalog.defaultLang {
		translation, ok = catalog.translations[catalog.defaultLang][key]
		if ok && catalog.logger != nil {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best matching supported language for an
// Accept-Language header value or a bare language code.
func MatchLanguage(acceptLang string) string {
	if catalog == nil {
		return SupportedLanguages[0]
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return catalog.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := catalog.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(catalog.supported) {
		return catalog.defaultLang
	}

	base, _ := catalog.supported[idx].Base()
	return base.String()
}

// IsSupported checks if a language code has a catalog.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return len(catalog.translations[lang])
}
