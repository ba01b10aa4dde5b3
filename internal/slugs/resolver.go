// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package slugs derives, assigns, validates and resolves the localized slugs
// of blog posts, categories and products.
package slugs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/util"
)

// DefaultReserved is the reserved slug set used when none is configured.
var DefaultReserved = []string{
	"blog", "admin", "search", "politikalar", "i18n", "ckeditor5",
	"kitchen_sink", "injection-products", "pos-display-stands",
}

// Options configures a Resolver.
type Options struct {
	DefaultLanguage string
	Reserved        []string

	// FuzzyFallback lets inbound lookups match any slug field after the
	// language and default fields miss.
	FuzzyFallback bool

	// Cache stores inbound lookups. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	Logger *slog.Logger
}

// Resolver implements the localized slug operations. It holds no per-request
// state; the active language is passed to every call.
type Resolver struct {
	defaultLang string
	reserved    map[string]struct{}
	fuzzy       bool
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewResolver creates a resolver. An empty default language means "tr".
func NewResolver(opts Options) *Resolver {
	lang := NormalizeLang(opts.DefaultLanguage)
	if lang == "" {
		lang = "tr"
	}
	reserved := opts.Reserved
	if reserved == nil {
		reserved = DefaultReserved
	}
	r := &Resolver{
		defaultLang: lang,
		reserved:    make(map[string]struct{}, len(reserved)),
		fuzzy:       opts.FuzzyFallback,
		cache:       opts.Cache,
		cacheTTL:    opts.CacheTTL,
		logger:      opts.Logger,
	}
	for _, word := range reserved {
		if w := util.Slugify(word); w != "" {
			r.reserved[w] = struct{}{}
		}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// DefaultLanguage returns the configured default language.
func (r *Resolver) DefaultLanguage() string {
	return r.defaultLang
}

// IsReserved reports whether value is a reserved word. Both sides are compared
// in slug form, so "Kitchen_Sink" matches "kitchen-sink".
func (r *Resolver) IsReserved(value string) bool {
	_, ok := r.reserved[util.Slugify(value)]
	return ok
}

// Derive turns source text into a slug. Blank input yields "".
func (r *Resolver) Derive(source string) string {
	return util.Slugify(source)
}

// AssignUnique returns base, or base-2, base-3, ... for the first value not
// used by any slug field of another record of kind. An empty base yields "".
func (r *Resolver) AssignUnique(ctx context.Context, st Store, kind *Kind, field Field, base string, excludeID int64) (string, error) {
	if base == "" {
		return "", nil
	}
	candidate := base
	for n := 2; ; n++ {
		taken, err := st.SlugTaken(ctx, kind, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("probing %s %s %q: %w", kind.Name, field, candidate, err)
		}
		if !taken {
			if candidate != base {
				r.logger.Debug("slug suffixed", "kind", kind.Name, "field", field, "base", base, "slug", candidate)
			}
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}

// Backfill fills missing slugs of e in place: language slugs first, then the
// default slug from the default language slug or the base source text.
// Explicit slugs are normalized. For PolicyImmutable kinds the persisted
// non-empty slugs of an existing record replace the incoming ones.
func (r *Resolver) Backfill(ctx context.Context, st Store, e Sluggable) error {
	kind := e.SlugKind()
	set := e.SlugSet()
	id := e.EntityID()

	for _, f := range Fields() {
		set.Put(f, util.Slugify(set.Get(f)))
	}

	if id != 0 && kind.Policy == PolicyImmutable {
		persisted, err := st.PersistedSlugs(ctx, kind, id)
		if err != nil {
			return fmt.Errorf("loading persisted %s slugs: %w", kind.Name, err)
		}
		for f, v := range persisted.Values() {
			set.Put(f, v)
		}
	}

	source := e.SourceText()
	for _, lang := range SupportedLanguages {
		text := source.Lang(lang)
		if strings.TrimSpace(text) == "" || set.Lang(lang) != "" {
			continue
		}
		slug, err := r.AssignUnique(ctx, st, kind, FieldFor(lang), r.Derive(text), id)
		if err != nil {
			return err
		}
		set.Put(FieldFor(lang), slug)
	}

	if set.Slug == "" {
		set.Slug = set.Lang(r.defaultLang)
	}
	if set.Slug == "" {
		slug, err := r.AssignUnique(ctx, st, kind, FieldDefault, r.Derive(source.Base), id)
		if err != nil {
			return err
		}
		set.Slug = slug
	}
	return nil
}

// Validate runs every pre-save check on e and returns a *ValidationError
// holding all failures, nil when e is valid, or a storage error.
func (r *Resolver) Validate(ctx context.Context, st Store, e Sluggable) error {
	kind := e.SlugKind()
	verr := NewValidationError(kind.Name)
	def := r.defaultLang

	source := e.SourceText()
	required := append([]string{def}, kind.RequiredLanguages...)
	for _, lang := range required {
		if strings.TrimSpace(source.Lang(lang)) == "" {
			verr.Add(kind.SourceField+"_"+lang, MsgSourceRequired, "lang."+lang)
		}
	}

	if c, ok := e.(Contentful); ok {
		content := c.ContentText()
		switch kind.Content {
		case ContentRequired:
			if !util.HasVisibleText(content.Lang(def)) {
				verr.Add(kind.ContentField+"_"+def, MsgContentRequired)
			}
		case ContentOrSummary:
			summary := c.SummaryText()
			if !hasAnyText(summary) && !hasAnyVisible(content) {
				verr.Add(kind.SummaryField, MsgContentOrSummary)
				verr.Add(kind.ContentField, MsgContentOrSummary)
			}
		}
	}

	set := e.SlugSet()
	if strings.TrimSpace(source.Lang(def)) != "" && set.Slug == "" {
		verr.Add(string(FieldDefault), MsgSlugRequired)
	}
	for _, f := range Fields() {
		value := strings.ToLower(set.Get(f))
		if value == "" {
			continue
		}
		if !util.IsValidSlug(value) {
			verr.Add(string(f), MsgSlugInvalid)
			continue
		}
		if r.IsReserved(value) {
			verr.Add(string(f), MsgSlugReserved)
			continue
		}
		taken, err := st.SlugTaken(ctx, kind, value, e.EntityID())
		if err != nil {
			return fmt.Errorf("checking %s %s: %w", kind.Name, f, err)
		}
		if taken {
			verr.Add(string(f), MsgSlugTakenPrefix+kind.Name)
		}
	}

	return verr.Err()
}

// ResolveInbound returns the id of the record of kind addressed by slug under
// lang. It tries slug_<lang>, then slug, then, with fuzzy fallback enabled,
// every slug field. Misses return ErrNotFound.
func (r *Resolver) ResolveInbound(ctx context.Context, st Store, kind *Kind, slug, lang string) (int64, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return 0, ErrNotFound
	}
	lang = NormalizeLang(lang)

	key := cacheKey(kind, lang, slug)
	if id, ok := r.cached(ctx, key); ok {
		return id, nil
	}

	fields := make([]Field, 0, 2)
	if IsSupported(lang) {
		fields = append(fields, FieldFor(lang))
	}
	fields = append(fields, FieldDefault)

	for _, f := range fields {
		id, err := st.FindBySlugField(ctx, kind, f, slug)
		if err == nil {
			r.remember(ctx, key, id)
			return id, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("resolving %s by %s: %w", kind.Name, f, err)
		}
	}

	if r.fuzzy {
		id, err := st.FindByAnySlug(ctx, kind, slug)
		if err == nil {
			r.remember(ctx, key, id)
			return id, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("resolving %s by any slug: %w", kind.Name, err)
		}
	}

	return 0, ErrNotFound
}

// OutboundSlug picks the slug of e for links under lang: slug_<lang>, then
// slug_<default>, then slug, then the first non-empty field.
func (r *Resolver) OutboundSlug(e Sluggable, lang string) string {
	return Outbound(*e.SlugSet(), NormalizeLang(lang), r.defaultLang)
}

// Outbound is OutboundSlug on a bare slug set.
func Outbound(set Set, lang, defaultLang string) string {
	if IsSupported(lang) {
		if v := set.Lang(lang); v != "" {
			return v
		}
	}
	if v := set.Lang(defaultLang); v != "" {
		return v
	}
	if set.Slug != "" {
		return set.Slug
	}
	for _, f := range Fields() {
		if v := set.Get(f); v != "" {
			return v
		}
	}
	return ""
}

// Invalidate drops every cached inbound lookup of kind.
func (r *Resolver) Invalidate(ctx context.Context, kind *Kind) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeleteByPrefix(ctx, cachePrefix(kind)); err != nil {
		r.logger.Warn("failed to invalidate slug cache", "kind", kind.Name, "error", err)
	}
}

func (r *Resolver) cached(ctx context.Context, key string) (int64, bool) {
	if r.cache == nil {
		return 0, false
	}
	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("slug cache read failed", "key", key, "error", err)
		}
		return 0, false
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (r *Resolver) remember(ctx context.Context, key string, id int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, []byte(strconv.FormatInt(id, 10)), r.cacheTTL); err != nil {
		r.logger.Warn("slug cache write failed", "key", key, "error", err)
	}
}

func cachePrefix(kind *Kind) string {
	return "slug:" + kind.Name + ":"
}

func cacheKey(kind *Kind, lang, slug string) string {
	return cachePrefix(kind) + lang + ":" + slug
}

func hasAnyText(t Text) bool {
	for _, v := range []string{t.Base, t.EN, t.TR} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func hasAnyVisible(t Text) bool {
	for _, v := range []string{t.Base, t.EN, t.TR} {
		if util.HasVisibleText(v) {
			return true
		}
	}
	return false
}
