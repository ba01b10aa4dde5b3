// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/atadizayn/atasite/internal/slugs"
)

// Product belongs to one category.
type Product struct {
	ID          int64      `json:"id"`
	CategoryID  int64      `json:"category_id"`
	Name        slugs.Text `json:"name"`
	Slugs       slugs.Set  `json:"slugs"`
	Description slugs.Text `json:"description"`
	RichText    slugs.Text `json:"rich_text"`
	PublishDate time.Time  `json:"publish_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Product) SlugKind() *slugs.Kind   { return &ProductKind }
func (p *Product) EntityID() int64         { return p.ID }
func (p *Product) SlugSet() *slugs.Set     { return &p.Slugs }
func (p *Product) SourceText() slugs.Text  { return p.Name }
func (p *Product) SummaryText() slugs.Text { return p.Description }
func (p *Product) ContentText() slugs.Text { return p.RichText }
