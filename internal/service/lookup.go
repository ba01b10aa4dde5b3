// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/store"
)

// notFound maps sql.ErrNoRows to slugs.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return slugs.ErrNotFound
	}
	return err
}

// GetPost returns a post by ID.
func (s *ContentService) GetPost(ctx context.Context, id int64) (model.BlogPost, error) {
	p, err := s.queries.GetBlogPost(ctx, id)
	return p, notFound(err)
}

// GetCategory returns a category by ID.
func (s *ContentService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := s.queries.GetCategory(ctx, id)
	return c, notFound(err)
}

// GetProduct returns a product by ID.
func (s *ContentService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := s.queries.GetProduct(ctx, id)
	return p, notFound(err)
}

// ListPosts returns posts of a collection ("" for all). With publishedOnly
// only posts visible now are returned.
func (s *ContentService) ListPosts(ctx context.Context, collection string, publishedOnly bool) ([]model.BlogPost, error) {
	arg := store.ListBlogPostsParams{Collection: collection}
	if publishedOnly {
		arg.PublishedAt = s.now()
	}
	return s.queries.ListBlogPosts(ctx, arg)
}

// ListCategories returns categories of a collection ("" for all).
func (s *ContentService) ListCategories(ctx context.Context, collection string) ([]model.Category, error) {
	return s.queries.ListCategories(ctx, collection)
}

// ListProducts returns the products of a category, or all when categoryID is 0.
func (s *ContentService) ListProducts(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return s.queries.ListProducts(ctx, categoryID)
}

// PostBySlug resolves a published post from a request slug and language.
func (s *ContentService) PostBySlug(ctx context.Context, slug, lang string) (model.BlogPost, error) {
	id, err := s.resolver.ResolveInbound(ctx, s.queries, &model.BlogPostKind, slug, lang)
	if err != nil {
		return model.BlogPost{}, err
	}
	p, err := s.GetPost(ctx, id)
	if err != nil {
		return model.BlogPost{}, err
	}
	if !p.IsPublished(s.now()) {
		return model.BlogPost{}, slugs.ErrNotFound
	}
	return p, nil
}

// CategoryBySlug resolves a category from a request slug and language.
func (s *ContentService) CategoryBySlug(ctx context.Context, slug, lang string) (model.Category, error) {
	id, err := s.resolver.ResolveInbound(ctx, s.queries, &model.CategoryKind, slug, lang)
	if err != nil {
		return model.Category{}, err
	}
	return s.GetCategory(ctx, id)
}

// ProductBySlug resolves a product and its category. The product must
// belong to the category addressed by categorySlug.
func (s *ContentService) ProductBySlug(ctx context.Context, categorySlug, productSlug, lang string) (model.Category, model.Product, error) {
	c, err := s.CategoryBySlug(ctx, categorySlug, lang)
	if err != nil {
		return model.Category{}, model.Product{}, err
	}
	id, err := s.resolver.ResolveInbound(ctx, s.queries, &model.ProductKind, productSlug, lang)
	if err != nil {
		return model.Category{}, model.Product{}, err
	}
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return model.Category{}, model.Product{}, err
	}
	if p.CategoryID != c.ID {
		return model.Category{}, model.Product{}, slugs.ErrNotFound
	}
	return c, p, nil
}

// DeletePost removes a post and its registered slugs.
func (s *ContentService) DeletePost(ctx context.Context, id int64) error {
	return s.delete(ctx, &model.BlogPostKind, id, func(q *store.Queries) error {
		return q.DeleteBlogPost(ctx, id)
	})
}

// DeleteCategory removes a category without products.
func (s *ContentService) DeleteCategory(ctx context.Context, id int64) error {
	return s.delete(ctx, &model.CategoryKind, id, func(q *store.Queries) error {
		n, err := q.CountProductsByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}
		return q.DeleteCategory(ctx, id)
	})
}

// DeleteProduct removes a product and its registered slugs.
func (s *ContentService) DeleteProduct(ctx context.Context, id int64) error {
	return s.delete(ctx, &model.ProductKind, id, func(q *store.Queries) error {
		return q.DeleteProduct(ctx, id)
	})
}

func (s *ContentService) delete(ctx context.Context, kind *slugs.Kind, id int64, del func(q *store.Queries) error) error {
	err := store.WithTx(ctx, s.db, func(q *store.Queries) error {
		if err := del(q); err != nil {
			return notFound(err)
		}
		return q.DeleteSlugRegistry(ctx, kind, id)
	})
	if err != nil {
		if errors.Is(err, slugs.ErrNotFound) || errors.Is(err, ErrCategoryInUse) {
			return err
		}
		return fmt.Errorf("deleting %s %d: %w", kind.Name, id, err)
	}

	s.changed(ctx, kind)
	if s.events != nil {
		_ = s.events.LogContentEvent(ctx, kind.Name+" deleted", map[string]any{"id": id})
	}
	return nil
}

// PreviewSlug derives a slug from text and makes it unique among the records
// of kind other than excludeID.
func (s *ContentService) PreviewSlug(ctx context.Context, kind *slugs.Kind, text string, excludeID int64) (derived, unique string, err error) {
	derived = s.resolver.Derive(text)
	unique, err = s.resolver.AssignUnique(ctx, s.queries, kind, slugs.FieldDefault, derived, excludeID)
	return derived, unique, err
}
