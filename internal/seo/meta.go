// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"sort"
	"strings"

	"github.com/atadizayn/atasite/internal/util"
)

// DescriptionLength is the maximum meta description length in runes.
const DescriptionLength = 160

// Alternate is one hreflang link of a page.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// Meta holds the SEO data returned with a page.
type Meta struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Canonical   string      `json:"canonical"`
	Language    string      `json:"language"`
	OGType      string      `json:"og_type"`
	Robots      string      `json:"robots"`
	Alternates  []Alternate `json:"alternates,omitempty"`
}

// PageData contains page information for building meta data.
type PageData struct {
	Title           string
	MetaDescription string
	Body            string            // rich HTML, used when MetaDescription is empty
	Lang            string            // language of the rendered page
	Paths           map[string]string // language code -> site-relative path
	CanonicalURL    string            // overrides the path of Lang
	Article         bool
	NoIndex         bool
	NoFollow        bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	DefaultLanguage string
}

// BuildMeta creates a Meta struct from page and site data with proper fallbacks.
func BuildMeta(page *PageData, site *SiteConfig) *Meta {
	meta := &Meta{
		Title:     site.SiteName,
		Canonical: site.SiteURL + "/",
		Language:  site.DefaultLanguage,
		OGType:    "website",
		Robots:    "index,follow",
	}
	if page == nil {
		return meta
	}

	if page.Title != "" {
		meta.Title = page.Title
		if site.SiteName != "" {
			meta.Title += " | " + site.SiteName
		}
	}
	if page.Article {
		meta.OGType = "article"
	}
	if page.Lang != "" {
		meta.Language = page.Lang
	}

	// Description: meta_description -> stripped body
	if page.MetaDescription != "" {
		meta.Description = util.TruncateRunes(util.StripTags(page.MetaDescription), DescriptionLength)
	} else if page.Body != "" {
		meta.Description = util.TruncateRunes(util.StripTags(page.Body), DescriptionLength)
	}

	switch {
	case page.CanonicalURL != "":
		meta.Canonical = page.CanonicalURL
	case page.Paths[meta.Language] != "":
		meta.Canonical = site.SiteURL + page.Paths[meta.Language]
	}

	meta.Alternates = buildAlternates(page.Paths, site)
	meta.Robots = buildRobotsDirective(page.NoIndex, page.NoFollow)
	return meta
}

func buildAlternates(paths map[string]string, site *SiteConfig) []Alternate {
	if len(paths) == 0 {
		return nil
	}
	langs := make([]string, 0, len(paths))
	for lang := range paths {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	out := make([]Alternate, 0, len(langs)+1)
	for _, lang := range langs {
		out = append(out, Alternate{Hreflang: lang, Href: site.SiteURL + paths[lang]})
	}
	if p, ok := paths[site.DefaultLanguage]; ok {
		out = append(out, Alternate{Hreflang: XDefaultHreflang, Href: site.SiteURL + p})
	}
	return out
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	parts := []string{"index", "follow"}
	if noIndex {
		parts[0] = "noindex"
	}
	if noFollow {
		parts[1] = "nofollow"
	}
	return strings.Join(parts, ",")
}
