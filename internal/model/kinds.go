// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the blog, category and product records and their
// localized slug descriptors.
package model

import "github.com/atadizayn/atasite/internal/slugs"

// Kind descriptors. Every kind keeps its slugs once assigned.
var (
	BlogPostKind = slugs.Kind{
		Name:         "blog_post",
		Table:        "blog_posts",
		SourceField:  "title",
		SummaryField: "meta_description",
		ContentField: "content",
		Content:      slugs.ContentRequired,
		Policy:       slugs.PolicyImmutable,
	}

	CategoryKind = slugs.Kind{
		Name:         "category",
		Table:        "categories",
		SourceField:  "name",
		SummaryField: "description",
		ContentField: "rich_text",
		Content:      slugs.ContentRequired,
		Policy:       slugs.PolicyImmutable,
	}

	ProductKind = slugs.Kind{
		Name:              "product",
		Table:             "products",
		SourceField:       "name",
		SummaryField:      "description",
		ContentField:      "rich_text",
		RequiredLanguages: []string{"en", "tr"},
		Content:           slugs.ContentOrSummary,
		Policy:            slugs.PolicyImmutable,
	}
)

// Kinds returns every sluggable kind.
func Kinds() []*slugs.Kind {
	return []*slugs.Kind{&BlogPostKind, &CategoryKind, &ProductKind}
}

// KindByName returns the kind with the given name, or nil.
func KindByName(name string) *slugs.Kind {
	for _, k := range Kinds() {
		if k.Name == name {
			return k
		}
	}
	return nil
}
