// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/atadizayn/atasite/internal/testutil"
)

func languageRouter(defaultLang string) http.Handler {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetLanguage(r)))
	})

	r := chi.NewRouter()
	r.With(Language(defaultLang)).Get("/", echo)
	r.Route("/{lang}", func(r chi.Router) {
		r.Use(Language(defaultLang))
		r.Get("/", echo)
		r.Get("/{slug}", echo)
	})
	return r
}

func TestLanguage(t *testing.T) {
	testutil.InitI18n(t)

	tests := []struct {
		name     string
		path     string
		cookie   string
		accept   string
		wantCode int
		wantLang string
	}{
		{name: "url segment", path: "/en/some-page", wantCode: http.StatusOK, wantLang: "en"},
		{name: "url segment wins over cookie", path: "/tr/", cookie: "en", wantCode: http.StatusOK, wantLang: "tr"},
		{name: "url segment is case insensitive", path: "/EN/", wantCode: http.StatusOK, wantLang: "en"},
		{name: "unsupported url segment", path: "/de/seite", wantCode: http.StatusNotFound},
		{name: "cookie", path: "/", cookie: "en", wantCode: http.StatusOK, wantLang: "en"},
		{name: "invalid cookie falls through", path: "/", cookie: "fr", accept: "en-US,en;q=0.9", wantCode: http.StatusOK, wantLang: "en"},
		{name: "accept-language", path: "/", accept: "en-GB", wantCode: http.StatusOK, wantLang: "en"},
		{name: "accept-language turkish", path: "/", accept: "tr-TR,tr;q=0.9", wantCode: http.StatusOK, wantLang: "tr"},
		{name: "unmatched accept-language uses default", path: "/", accept: "ja", wantCode: http.StatusOK, wantLang: "tr"},
		{name: "default", path: "/", wantCode: http.StatusOK, wantLang: "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()

			languageRouter("tr").ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK && rec.Body.String() != tt.wantLang {
				t.Errorf("language = %q, want %q", rec.Body.String(), tt.wantLang)
			}
		})
	}
}

func TestGetLanguage_NoMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetLanguage(req); got != "" {
		t.Errorf("GetLanguage() = %q, want empty", got)
	}
}

func TestWithLanguage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithLanguage(req.Context(), "en"))
	if got := GetLanguage(req); got != "en" {
		t.Errorf("GetLanguage() = %q, want en", got)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, "en")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != LanguageCookieName || c.Value != "en" {
		t.Errorf("cookie = %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || c.Path != "/" {
		t.Errorf("cookie attributes: HttpOnly=%v Path=%q", c.HttpOnly, c.Path)
	}
}
