// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/seo"
)

// Sitemap returns the sitemap XML with one <url> per language and hreflang
// alternates. The document is cached until the next content change.
func (s *ContentService) Sitemap(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, SitemapCacheKey)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("sitemap cache read failed", "error", err)
		}
	}

	data, err := s.buildSitemap(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, SitemapCacheKey, data, 0); err != nil {
			s.logger.Warn("sitemap cache write failed", "error", err)
		}
	}
	return data, nil
}

func (s *ContentService) buildSitemap(ctx context.Context) ([]byte, error) {
	b := seo.NewSitemapBuilder(s.urls.Absolute(""), s.resolver.DefaultLanguage())

	b.Add(seo.Entry{
		Paths:      s.urls.Alternates(s.urls.Home),
		ChangeFreq: seo.ChangeFreqDaily,
		Priority:   "1.0",
	})

	categories, err := s.ListCategories(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	byID := make(map[int64]*model.Category, len(categories))
	for i := range categories {
		c := &categories[i]
		byID[c.ID] = c
		b.Add(seo.Entry{
			Paths:      s.urls.Alternates(func(lang string) string { return s.urls.Category(c, lang) }),
			UpdatedAt:  c.UpdatedAt,
			ChangeFreq: seo.ChangeFreqWeekly,
			Priority:   "0.8",
		})
	}

	products, err := s.ListProducts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	for i := range products {
		p := &products[i]
		c, ok := byID[p.CategoryID]
		if !ok {
			continue
		}
		b.Add(seo.Entry{
			Paths:      s.urls.Alternates(func(lang string) string { return s.urls.Product(c, p, lang) }),
			UpdatedAt:  p.UpdatedAt,
			ChangeFreq: seo.ChangeFreqWeekly,
			Priority:   "0.7",
		})
	}

	posts, err := s.ListPosts(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	for i := range posts {
		p := &posts[i]
		b.Add(seo.Entry{
			Paths:      s.urls.Alternates(func(lang string) string { return s.urls.Post(p, lang) }),
			UpdatedAt:  p.UpdatedAt,
			ChangeFreq: seo.ChangeFreqMonthly,
			Priority:   "0.6",
		})
	}

	return b.Build()
}
