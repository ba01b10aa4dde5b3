// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/atadizayn/atasite/internal/model"
)

// PublishDue handles posts whose publish date passed in (since, now]. Such
// posts become visible without a save, so the generated documents that list
// them are dropped here. It returns the number of posts that went live.
func (s *ContentService) PublishDue(ctx context.Context, since, now time.Time) (int, error) {
	n, err := s.queries.CountBlogPostsPublishedBetween(ctx, since, now)
	if err != nil {
		return 0, fmt.Errorf("counting scheduled posts: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	s.changed(ctx, &model.BlogPostKind)
	s.logger.Info("scheduled posts went live", "count", n)
	if s.events != nil {
		_ = s.events.LogContentEvent(ctx, "scheduled blog posts published", map[string]any{
			"count": n,
			"since": since.UTC().Format(time.RFC3339),
		})
	}
	return n, nil
}
