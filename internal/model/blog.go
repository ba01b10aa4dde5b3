// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/atadizayn/atasite/internal/slugs"
)

// Blog post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Blog post collections
const (
	PostCollectionPolicy       = "policy"
	PostCollectionAnnouncement = "announcement"
	PostCollectionPost         = "post"
	PostCollectionCorporate    = "corporate"
)

// PostCollections lists the valid blog post collections.
var PostCollections = []string{
	PostCollectionPolicy,
	PostCollectionAnnouncement,
	PostCollectionPost,
	PostCollectionCorporate,
}

// MetaDescriptionLength is the rune limit of a generated meta description.
const MetaDescriptionLength = 160

// BlogPost represents a blog entry.
type BlogPost struct {
	ID              int64      `json:"id"`
	Title           slugs.Text `json:"title"`
	Slugs           slugs.Set  `json:"slugs"`
	MetaDescription slugs.Text `json:"meta_description"`
	Content         slugs.Text `json:"content"`
	Collection      string     `json:"collection"`
	Status          string     `json:"status"`
	PublishDate     time.Time  `json:"publish_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p *BlogPost) SlugKind() *slugs.Kind   { return &BlogPostKind }
func (p *BlogPost) EntityID() int64         { return p.ID }
func (p *BlogPost) SlugSet() *slugs.Set     { return &p.Slugs }
func (p *BlogPost) SourceText() slugs.Text  { return p.Title }
func (p *BlogPost) SummaryText() slugs.Text { return p.MetaDescription }
func (p *BlogPost) ContentText() slugs.Text { return p.Content }

// IsPublished reports whether the post is visible at now.
func (p *BlogPost) IsPublished(now time.Time) bool {
	return p.Status == PostStatusPublished && !p.PublishDate.After(now)
}
