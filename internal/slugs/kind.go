// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package slugs

import "context"

// Policy controls what happens to slugs when an existing record is saved.
type Policy int

const (
	// PolicyImmutable restores every non-empty persisted slug on update;
	// only fields that are still empty get backfilled.
	PolicyImmutable Policy = iota
	// PolicyBackfill keeps the incoming slugs and fills only the empty ones.
	PolicyBackfill
)

// ContentRule describes which body content a kind requires.
type ContentRule int

const (
	ContentNone ContentRule = iota
	// ContentRequired needs visible text in the default language's content.
	ContentRequired
	// ContentOrSummary needs either a summary or visible content.
	ContentOrSummary
)

// Kind describes one entity kind participating in localized slugs.
type Kind struct {
	Name         string // blog_post, category, product
	Table        string
	SourceField  string // title or name
	SummaryField string
	ContentField string

	// RequiredLanguages lists languages whose source text is mandatory in
	// addition to the default language.
	RequiredLanguages []string

	Content ContentRule
	Policy  Policy
}

// Sluggable is a record carrying localized slugs.
type Sluggable interface {
	SlugKind() *Kind
	// EntityID is 0 for records that are not persisted yet.
	EntityID() int64
	SlugSet() *Set
	SourceText() Text
}

// Contentful is implemented by records with a summary and rich content body.
type Contentful interface {
	SummaryText() Text
	ContentText() Text
}

// Store is the persistence contract the resolver needs. Implementations may be
// bound to a transaction.
type Store interface {
	// SlugTaken reports whether value is used by any slug field of any record
	// of kind other than excludeID.
	SlugTaken(ctx context.Context, kind *Kind, value string, excludeID int64) (bool, error)

	// PersistedSlugs returns the stored slugs of a record.
	PersistedSlugs(ctx context.Context, kind *Kind, id int64) (Set, error)

	// FindBySlugField returns the id of the record whose field equals value,
	// or ErrNotFound.
	FindBySlugField(ctx context.Context, kind *Kind, field Field, value string) (int64, error)

	// FindByAnySlug returns the id of the record owning value in any slug
	// field, or ErrNotFound.
	FindByAnySlug(ctx context.Context, kind *Kind, value string) (int64, error)
}
