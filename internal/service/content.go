// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/store"
	"github.com/atadizayn/atasite/internal/util"
)

// SitemapCacheKey is the cache key of the rendered sitemap.
const SitemapCacheKey = "sitemap:xml"

// Message keys of checks owned by the service.
const (
	MsgChoiceInvalid   = "validation.choice_invalid"
	MsgCategoryMissing = "validation.category_missing"
)

// ErrCategoryInUse is returned when deleting a category that still has products.
var ErrCategoryInUse = errors.New("category has products")

// ContentService saves and looks up blog posts, categories and products.
// Every save runs slug backfill, validation, persistence and slug registry
// sync in one transaction.
type ContentService struct {
	db       *sql.DB
	queries  *store.Queries
	resolver *slugs.Resolver
	urls     *URLs
	events   *EventService
	cache    cache.Cache
	logger   *slog.Logger
	now      func() time.Time
}

// ContentOptions holds the collaborators of a ContentService.
type ContentOptions struct {
	Resolver *slugs.Resolver
	URLs     *URLs
	Events   *EventService
	// Cache holds generated documents invalidated on every change. Optional.
	Cache  cache.Cache
	Logger *slog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(db *sql.DB, opts ContentOptions) *ContentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		db:       db,
		queries:  store.New(db),
		resolver: opts.Resolver,
		urls:     opts.URLs,
		events:   opts.Events,
		cache:    opts.Cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Resolver returns the slug resolver used by the service.
func (s *ContentService) Resolver() *slugs.Resolver {
	return s.resolver
}

// URLs returns the URL builder used by the service.
func (s *ContentService) URLs() *URLs {
	return s.urls
}

// SavePost creates or updates a blog post.
func (s *ContentService) SavePost(ctx context.Context, p *model.BlogPost) error {
	return s.savePost(ctx, p, false)
}

// ValidatePost runs the save checks on p without persisting it. Computed
// slugs are written into p.
func (s *ContentService) ValidatePost(ctx context.Context, p *model.BlogPost) error {
	return s.savePost(ctx, p, true)
}

func (s *ContentService) savePost(ctx context.Context, p *model.BlogPost, dry bool) error {
	def := s.resolver.DefaultLanguage()
	if p.Collection == "" {
		p.Collection = model.PostCollectionPost
	}
	if p.Status == "" {
		p.Status = model.PostStatusDraft
	}
	syncBase(&p.Title, def)
	syncBase(&p.Content, def)
	fillSummary(&p.MetaDescription, p.Content, model.MetaDescriptionLength)
	syncBase(&p.MetaDescription, def)

	return s.save(ctx, p, dry, func(ctx context.Context, q *store.Queries, verr *slugs.ValidationError) error {
		if !slices.Contains(model.PostCollections, p.Collection) {
			verr.Add("collection", MsgChoiceInvalid)
		}
		if p.Status != model.PostStatusDraft && p.Status != model.PostStatusPublished {
			verr.Add("status", MsgChoiceInvalid)
		}
		return nil
	}, func(ctx context.Context, q *store.Queries) error {
		if p.ID == 0 {
			return q.CreateBlogPost(ctx, p)
		}
		return q.UpdateBlogPost(ctx, p)
	})
}

// SaveCategory creates or updates a category and refreshes its canonical URL.
func (s *ContentService) SaveCategory(ctx context.Context, c *model.Category) error {
	return s.saveCategory(ctx, c, false)
}

// ValidateCategory runs the save checks on c without persisting it.
func (s *ContentService) ValidateCategory(ctx context.Context, c *model.Category) error {
	return s.saveCategory(ctx, c, true)
}

func (s *ContentService) saveCategory(ctx context.Context, c *model.Category, dry bool) error {
	def := s.resolver.DefaultLanguage()
	if c.Collection == "" {
		c.Collection = model.CategoryCollectionStand
	}
	syncBase(&c.Name, def)
	syncBase(&c.RichText, def)
	fillSummary(&c.Description, c.RichText, 0)
	syncBase(&c.Description, def)

	return s.save(ctx, c, dry, func(ctx context.Context, q *store.Queries, verr *slugs.ValidationError) error {
		if !slices.Contains(model.CategoryCollections, c.Collection) {
			verr.Add("collection", MsgChoiceInvalid)
		}
		return nil
	}, func(ctx context.Context, q *store.Queries) error {
		c.SEOCanonical = s.urls.Absolute(s.urls.Category(c, def))
		if c.ID == 0 {
			return q.CreateCategory(ctx, c)
		}
		return q.UpdateCategory(ctx, c)
	})
}

// SaveProduct creates or updates a product.
func (s *ContentService) SaveProduct(ctx context.Context, p *model.Product) error {
	return s.saveProduct(ctx, p, false)
}

// ValidateProduct runs the save checks on p without persisting it.
func (s *ContentService) ValidateProduct(ctx context.Context, p *model.Product) error {
	return s.saveProduct(ctx, p, true)
}

func (s *ContentService) saveProduct(ctx context.Context, p *model.Product, dry bool) error {
	def := s.resolver.DefaultLanguage()
	syncBase(&p.Name, def)
	syncBase(&p.RichText, def)
	fillSummary(&p.Description, p.RichText, 0)
	syncBase(&p.Description, def)

	return s.save(ctx, p, dry, func(ctx context.Context, q *store.Queries, verr *slugs.ValidationError) error {
		if p.CategoryID == 0 {
			verr.Add("category_id", MsgCategoryMissing)
			return nil
		}
		_, err := q.GetCategory(ctx, p.CategoryID)
		if errors.Is(err, sql.ErrNoRows) {
			verr.Add("category_id", MsgCategoryMissing)
			return nil
		}
		return err
	}, func(ctx context.Context, q *store.Queries) error {
		if p.ID == 0 {
			return q.CreateProduct(ctx, p)
		}
		return q.UpdateProduct(ctx, p)
	})
}

type extraChecks func(ctx context.Context, q *store.Queries, verr *slugs.ValidationError) error
type persistFunc func(ctx context.Context, q *store.Queries) error

// errDryRun rolls back a validation-only save.
var errDryRun = errors.New("dry run")

// save runs the save pipeline of e inside one transaction.
// With dry set the transaction is rolled back once validation passes.
func (s *ContentService) save(ctx context.Context, e slugs.Sluggable, dry bool, checks extraChecks, persist persistFunc) error {
	kind := e.SlugKind()
	isNew := e.EntityID() == 0

	err := store.WithTx(ctx, s.db, func(q *store.Queries) error {
		if err := s.resolver.Backfill(ctx, q, e); err != nil {
			return err
		}

		verr := slugs.NewValidationError(kind.Name)
		if err := checks(ctx, q, verr); err != nil {
			return err
		}
		err := s.resolver.Validate(ctx, q, e)
		var slugErr *slugs.ValidationError
		if errors.As(err, &slugErr) {
			verr.Merge(slugErr)
		} else if err != nil {
			return err
		}
		if verr.Len() > 0 {
			return verr
		}
		if dry {
			return errDryRun
		}

		if err := persist(ctx, q); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return slugs.ErrNotFound
			}
			if store.IsUniqueViolation(err) {
				return takenError(kind, *e.SlugSet(), "")
			}
			return fmt.Errorf("saving %s: %w", kind.Name, err)
		}

		err = q.SyncSlugRegistry(ctx, kind, e.EntityID(), *e.SlugSet())
		var conflict *store.SlugConflictError
		if errors.As(err, &conflict) {
			return takenError(kind, *e.SlugSet(), conflict.Value)
		}
		return err
	})
	if dry && errors.Is(err, errDryRun) {
		return nil
	}
	if err != nil {
		var verr *slugs.ValidationError
		if errors.As(err, &verr) && !dry {
			s.logger.Info("content validation failed", "kind", kind.Name, "id", e.EntityID(), "fields", verr.FieldNames())
		}
		if isNew && !dry {
			resetID(e)
		}
		return err
	}

	s.changed(ctx, kind)
	if s.events != nil {
		action := "updated"
		if isNew {
			action = "created"
		}
		_ = s.events.LogContentEvent(ctx, kind.Name+" "+action, map[string]any{
			"id":   e.EntityID(),
			"slug": e.SlugSet().Slug,
		})
	}
	return nil
}

// changed drops every cached document affected by a change of kind.
func (s *ContentService) changed(ctx context.Context, kind *slugs.Kind) {
	s.resolver.Invalidate(ctx, kind)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, SitemapCacheKey); err != nil {
			s.logger.Warn("failed to invalidate sitemap cache", "error", err)
		}
	}
}

// takenError reports a storage-level slug collision as a validation error on
// the fields holding value, or on every non-empty field when value is unknown.
func takenError(kind *slugs.Kind, set slugs.Set, value string) *slugs.ValidationError {
	verr := slugs.NewValidationError(kind.Name)
	for f, v := range set.Values() {
		if value == "" || v == value {
			verr.Add(string(f), slugs.MsgSlugTakenPrefix+kind.Name)
		}
	}
	return verr
}

// resetID clears the ID assigned by a rolled back insert.
func resetID(e slugs.Sluggable) {
	switch r := e.(type) {
	case *model.BlogPost:
		r.ID = 0
	case *model.Category:
		r.ID = 0
	case *model.Product:
		r.ID = 0
	}
}

// syncBase mirrors the default language variant into the base value.
func syncBase(t *slugs.Text, def string) {
	if v := t.Lang(def); strings.TrimSpace(v) != "" {
		t.Base = v
	}
}

// fillSummary sets every empty summary variant from the plain text of the
// matching content variant, cut to maxRunes when maxRunes > 0.
func fillSummary(summary *slugs.Text, content slugs.Text, maxRunes int) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) != "" {
			return
		}
		text := util.StripTags(src)
		if maxRunes > 0 {
			text = util.TruncateRunes(text, maxRunes)
		}
		*dst = text
	}
	fill(&summary.Base, content.Base)
	fill(&summary.EN, content.EN)
	fill(&summary.TR, content.TR)
}
