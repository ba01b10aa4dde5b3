// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atadizayn/atasite/internal/cache"
)

func TestPublishDueInvalidatesSitemap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	publishAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	p := newPost("Gelecek Yazı", "Upcoming Post")
	p.PublishDate = publishAt
	require.NoError(t, env.svc.SavePost(ctx, p))

	_, err := env.svc.Sitemap(ctx)
	require.NoError(t, err)
	_, err = env.cache.Get(ctx, SitemapCacheKey)
	require.NoError(t, err)

	n, err := env.svc.PublishDue(ctx, publishAt.Add(-2*time.Hour), publishAt.Add(-time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = env.cache.Get(ctx, SitemapCacheKey)
	require.NoError(t, err, "sitemap stays cached while nothing went live")

	n, err = env.svc.PublishDue(ctx, publishAt.Add(-time.Minute), publishAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = env.cache.Get(ctx, SitemapCacheKey)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestPublishDueIgnoresDrafts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	publishAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	p := newPost("Taslak", "Draft")
	p.Status = "draft"
	p.PublishDate = publishAt
	require.NoError(t, env.svc.SavePost(ctx, p))

	n, err := env.svc.PublishDue(ctx, publishAt.Add(-time.Minute), publishAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)
}
