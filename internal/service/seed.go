// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/slugs"
)

// Seed creates sample categories, products and posts when the database has
// no categories yet.
func (s *ContentService) Seed(ctx context.Context) error {
	existing, err := s.queries.ListCategories(ctx, "")
	if err != nil {
		return fmt.Errorf("checking for categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("categories already exist, skipping seed")
		return nil
	}

	stands := &model.Category{
		Name:       slugs.Text{TR: "POS Teşhir Standları", EN: "Display Stands"},
		Collection: model.CategoryCollectionStand,
		RichText: slugs.Text{
			TR: "<p>Mağazalar için metal ve ahşap teşhir standları.</p>",
			EN: "<p>Metal and wooden display stands for retail.</p>",
		},
	}
	parts := &model.Category{
		Name:       slugs.Text{TR: "Enjeksiyon Ürünleri", EN: "Plastic Parts"},
		Collection: model.CategoryCollectionPart,
		RichText: slugs.Text{
			TR: "<p>Plastik enjeksiyon parçaları.</p>",
			EN: "<p>Plastic injection moulded parts.</p>",
		},
	}
	for _, c := range []*model.Category{stands, parts} {
		if err := s.SaveCategory(ctx, c); err != nil {
			return fmt.Errorf("seeding category: %w", err)
		}
	}

	products := []*model.Product{
		{
			CategoryID:  stands.ID,
			Name:        slugs.Text{TR: "Zemin Standı", EN: "Floor Stand"},
			Description: slugs.Text{TR: "Dört raflı zemin standı.", EN: "Four shelf floor stand."},
		},
		{
			CategoryID: stands.ID,
			Name:       slugs.Text{TR: "Tezgah Üstü Stand", EN: "Counter Stand"},
			RichText:   slugs.Text{TR: "<p>Kasa önü için.</p>", EN: "<p>For checkout counters.</p>"},
		},
		{
			CategoryID:  parts.ID,
			Name:        slugs.Text{TR: "Raf Kancası", EN: "Shelf Hook"},
			Description: slugs.Text{TR: "Plastik raf kancası.", EN: "Plastic shelf hook."},
		},
	}
	for _, p := range products {
		if err := s.SaveProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding product: %w", err)
		}
	}

	posts := []*model.BlogPost{
		{
			Title:      slugs.Text{TR: "Yeni Web Sitemiz Yayında", EN: "Our New Website Is Live"},
			Content:    slugs.Text{TR: "<p>Yeni sitemizi ziyaret edin.</p>", EN: "<p>Visit our new site.</p>"},
			Collection: model.PostCollectionAnnouncement,
			Status:     model.PostStatusPublished,
		},
		{
			Title:      slugs.Text{TR: "Gizlilik Politikası", EN: "Privacy Policy"},
			Content:    slugs.Text{TR: "<p>Kişisel verileriniz korunur.</p>", EN: "<p>Your personal data is protected.</p>"},
			Collection: model.PostCollectionPolicy,
			Status:     model.PostStatusPublished,
		},
	}
	for _, p := range posts {
		if err := s.SavePost(ctx, p); err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}
	}

	s.logger.Info("seeded sample content",
		"categories", 2,
		"products", len(products),
		"posts", len(posts),
	)
	return nil
}
