// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/service"
	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/testutil"
)

const testAdminToken = "test-admin-token-0123456789"

type testServer struct {
	router  http.Handler
	content *service.ContentService
	db      *sql.DB
	cache   *cache.MemoryCache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	testutil.InitI18n(t)
	db := testutil.TestDB(t)
	logger := testutil.TestLoggerSilent()

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mc.Close() })

	resolver := slugs.NewResolver(slugs.Options{
		DefaultLanguage: "tr",
		FuzzyFallback:   true,
		Cache:           mc,
		Logger:          logger,
	})
	content := service.NewContentService(db, service.ContentOptions{
		Resolver: resolver,
		URLs:     service.NewURLs("https://example.com", resolver),
		Events:   service.NewEventService(db, logger),
		Cache:    mc,
		Logger:   logger,
	})

	r := chi.NewRouter()
	NewHealthHandler(db, mc, testAdminToken, "test").Routes(r)
	NewFrontendHandler(content, FrontendConfig{SiteName: "Ata Dizayn"}, logger).Routes(r)

	return &testServer{router: r, content: content, db: db, cache: mc}
}

func (s *testServer) do(t *testing.T, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// seedCatalog stores one category with one product and one published post.
func (s *testServer) seedCatalog(t *testing.T) (*model.Category, *model.Product, *model.BlogPost) {
	t.Helper()
	ctx := context.Background()

	c := &model.Category{
		Name:     slugs.Text{TR: "Teşhir Standları", EN: "Display Stands"},
		RichText: slugs.Text{TR: "<p>Standlar</p>", EN: "<p>Stands</p>"},
	}
	require.NoError(t, s.content.SaveCategory(ctx, c))

	p := &model.Product{
		CategoryID: c.ID,
		Name:       slugs.Text{TR: "Zemin Standı", EN: "Floor Stand"},
		RichText:   slugs.Text{TR: "<p>Dört raflı</p>", EN: "<p>Four shelves</p>"},
	}
	require.NoError(t, s.content.SaveProduct(ctx, p))

	post := &model.BlogPost{
		Title:       slugs.Text{TR: "Yeni Sezon", EN: "New Season"},
		Content:     slugs.Text{TR: "<p>Yeni ürünler</p>", EN: "<p>New products</p>"},
		Status:      model.PostStatusPublished,
		PublishDate: time.Now().Add(-time.Hour),
	}
	require.NoError(t, s.content.SavePost(ctx, post))

	return c, p, post
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
