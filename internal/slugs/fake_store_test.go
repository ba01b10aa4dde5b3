// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package slugs

import (
	"context"
	"sort"
)

// memStore is an in-memory Store keyed by kind name and record id.
type memStore struct {
	records map[string]map[int64]Set
	nextID  int64
	lookups int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]map[int64]Set)}
}

func (m *memStore) put(kind *Kind, id int64, set Set) {
	if m.records[kind.Name] == nil {
		m.records[kind.Name] = make(map[int64]Set)
	}
	m.records[kind.Name][id] = set
	if id > m.nextID {
		m.nextID = id
	}
}

// save stores e the way the service would after a successful save.
func (m *memStore) save(e *entity) {
	if e.id == 0 {
		m.nextID++
		e.id = m.nextID
	}
	m.put(e.kind, e.id, e.slugs)
}

func (m *memStore) ids(kind *Kind) []int64 {
	ids := make([]int64, 0, len(m.records[kind.Name]))
	for id := range m.records[kind.Name] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *memStore) SlugTaken(_ context.Context, kind *Kind, value string, excludeID int64) (bool, error) {
	for _, id := range m.ids(kind) {
		if id == excludeID {
			continue
		}
		for _, v := range m.records[kind.Name][id].Values() {
			if v == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memStore) PersistedSlugs(_ context.Context, kind *Kind, id int64) (Set, error) {
	set, ok := m.records[kind.Name][id]
	if !ok {
		return Set{}, ErrNotFound
	}
	return set, nil
}

func (m *memStore) FindBySlugField(_ context.Context, kind *Kind, field Field, value string) (int64, error) {
	m.lookups++
	for _, id := range m.ids(kind) {
		if m.records[kind.Name][id].Get(field) == value {
			return id, nil
		}
	}
	return 0, ErrNotFound
}

func (m *memStore) FindByAnySlug(_ context.Context, kind *Kind, value string) (int64, error) {
	m.lookups++
	for _, id := range m.ids(kind) {
		for _, v := range m.records[kind.Name][id].Values() {
			if v == value {
				return id, nil
			}
		}
	}
	return 0, ErrNotFound
}

var (
	postKind = Kind{
		Name:         "blog_post",
		Table:        "blog_posts",
		SourceField:  "title",
		SummaryField: "meta_description",
		ContentField: "content",
		Content:      ContentRequired,
		Policy:       PolicyImmutable,
	}
	productKind = Kind{
		Name:              "product",
		Table:             "products",
		SourceField:       "name",
		SummaryField:      "description",
		ContentField:      "rich_text",
		RequiredLanguages: []string{"en", "tr"},
		Content:           ContentOrSummary,
		Policy:            PolicyBackfill,
	}
)

// entity is a minimal Sluggable and Contentful record.
type entity struct {
	kind    *Kind
	id      int64
	source  Text
	slugs   Set
	summary Text
	content Text
}

func (e *entity) SlugKind() *Kind   { return e.kind }
func (e *entity) EntityID() int64   { return e.id }
func (e *entity) SlugSet() *Set     { return &e.slugs }
func (e *entity) SourceText() Text  { return e.source }
func (e *entity) SummaryText() Text { return e.summary }
func (e *entity) ContentText() Text { return e.content }

func post(title string) *entity {
	return &entity{
		kind:    &postKind,
		source:  Text{Base: title, TR: title},
		content: Text{TR: "<p>içerik</p>"},
	}
}
