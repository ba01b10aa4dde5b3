// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for request locale detection,
// admin API authentication and response hardening.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/slugs"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyLanguage is the context key for the active language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "atasite_lang"

// Language creates middleware that detects and sets the active language.
// Priority order:
// 1. URL parameter {lang} from chi router (e.g., /en/blog/some-post)
// 2. Cookie preference
// 3. Accept-Language header
// 4. Default language
//
// An unsupported {lang} segment is answered with 404 so that unknown prefixes
// never fall through to content lookups.
func Language(defaultLang string) func(http.Handler) http.Handler {
	defaultLang = slugs.NormalizeLang(defaultLang)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if param := chi.URLParam(r, "lang"); param != "" {
				code := strings.ToLower(param)
				if !slugs.IsSupported(code) {
					WriteAPIError(w, http.StatusNotFound, "not_found",
						i18n.T(defaultLang, "error.not_found", i18n.T(defaultLang, "entity.page")), nil)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), code)))
				return
			}

			lang := DetectLanguage(r, defaultLang)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

// DetectLanguage picks a language for requests without a {lang} segment:
// cookie, then Accept-Language, then defaultLang.
func DetectLanguage(r *http.Request, defaultLang string) string {
	if cookie, err := r.Cookie(LanguageCookieName); err == nil {
		if code := strings.ToLower(cookie.Value); slugs.IsSupported(code) {
			return code
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if code := i18n.MatchLanguage(accept); slugs.IsSupported(code) {
			return code
		}
	}

	return defaultLang
}

// WithLanguage returns a copy of ctx carrying the language code.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ContextKeyLanguage, lang)
}

// GetLanguage returns the active language code from the request context, or
// an empty string when the Language middleware did not run.
func GetLanguage(r *http.Request) string {
	lang, _ := r.Context().Value(ContextKeyLanguage).(string)
	return lang
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
