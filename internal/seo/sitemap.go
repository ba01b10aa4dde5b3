// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemaps, robots.txt and page meta data for the
// localized site.
package seo

import (
	"encoding/xml"
	"sort"
	"time"
)

// Sitemap XML namespaces.
const (
	XMLNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace    = "http://www.w3.org/1999/xhtml"
	XDefaultHreflang  = "x-default"
	alternateRelation = "alternate"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// AlternateLink is an xhtml:link hreflang entry.
type AlternateLink struct {
	XMLName  xml.Name `xml:"xhtml:link"`
	Rel      string   `xml:"rel,attr"`
	Hreflang string   `xml:"hreflang,attr"`
	Href     string   `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// Entry is one localized resource: the same record reachable under one path
// per language.
type Entry struct {
	Paths      map[string]string // language code -> site-relative path
	UpdatedAt  time.Time
	ChangeFreq ChangeFreq
	Priority   string
}

// SitemapBuilder builds sitemap XML with hreflang alternates.
type SitemapBuilder struct {
	siteURL     string
	defaultLang string
	urls        []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. defaultLang is used for
// the x-default alternate.
func NewSitemapBuilder(siteURL, defaultLang string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL:     siteURL,
		defaultLang: defaultLang,
		urls:        make([]SitemapURL, 0),
	}
}

// Add emits one <url> per language of e, each listing every language as an
// alternate. Languages sharing a path are emitted once.
func (b *SitemapBuilder) Add(e Entry) {
	if len(e.Paths) == 0 {
		return
	}

	langs := make([]string, 0, len(e.Paths))
	for lang := range e.Paths {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	alternates := make([]AlternateLink, 0, len(langs)+1)
	for _, lang := range langs {
		alternates = append(alternates, AlternateLink{
			Rel:      alternateRelation,
			Hreflang: lang,
			Href:     b.siteURL + e.Paths[lang],
		})
	}
	if p, ok := e.Paths[b.defaultLang]; ok {
		alternates = append(alternates, AlternateLink{
			Rel:      alternateRelation,
			Hreflang: XDefaultHreflang,
			Href:     b.siteURL + p,
		})
	}

	var lastMod string
	if !e.UpdatedAt.IsZero() {
		lastMod = e.UpdatedAt.UTC().Format(time.RFC3339)
	}

	seen := make(map[string]bool, len(langs))
	for _, lang := range langs {
		loc := b.siteURL + e.Paths[lang]
		if seen[loc] {
			continue
		}
		seen[loc] = true
		b.urls = append(b.urls, SitemapURL{
			Loc:        loc,
			LastMod:    lastMod,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
			Alternates: alternates,
		})
	}
}

// Len returns the number of <url> entries added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS:      XMLNamespace,
		XMLNSXHTML: XHTMLNamespace,
		URLs:       b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
