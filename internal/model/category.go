// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/atadizayn/atasite/internal/slugs"
)

// Category collections
const (
	CategoryCollectionStand = "stand"
	CategoryCollectionPart  = "part"
)

// CategoryCollections lists the valid category collections.
var CategoryCollections = []string{CategoryCollectionStand, CategoryCollectionPart}

// Category groups products.
type Category struct {
	ID           int64      `json:"id"`
	Name         slugs.Text `json:"name"`
	Slugs        slugs.Set  `json:"slugs"`
	Collection   string     `json:"collection"`
	Description  slugs.Text `json:"description"`
	RichText     slugs.Text `json:"rich_text"`
	SEOCanonical string     `json:"seo_canonical"`
	PublishDate  time.Time  `json:"publish_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Category) SlugKind() *slugs.Kind   { return &CategoryKind }
func (c *Category) EntityID() int64         { return c.ID }
func (c *Category) SlugSet() *slugs.Set     { return &c.Slugs }
func (c *Category) SourceText() slugs.Text  { return c.Name }
func (c *Category) SummaryText() slugs.Text { return c.Description }
func (c *Category) ContentText() slugs.Text { return c.RichText }
