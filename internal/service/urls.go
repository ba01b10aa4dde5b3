// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"

	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/slugs"
)

// URLs builds localized paths from outbound slugs.
type URLs struct {
	siteURL  string
	resolver *slugs.Resolver
}

// NewURLs creates a URL builder for siteURL, e.g. "https://atadizayn.com".
func NewURLs(siteURL string, resolver *slugs.Resolver) *URLs {
	return &URLs{
		siteURL:  strings.TrimRight(siteURL, "/"),
		resolver: resolver,
	}
}

// lang returns lang when it has its own slug field, else the default language.
func (u *URLs) lang(lang string) string {
	lang = slugs.NormalizeLang(lang)
	if slugs.IsSupported(lang) {
		return lang
	}
	return u.resolver.DefaultLanguage()
}

// Home returns "/{lang}/".
func (u *URLs) Home(lang string) string {
	return "/" + u.lang(lang) + "/"
}

// Post returns "/{lang}/blog/{slug}".
func (u *URLs) Post(p *model.BlogPost, lang string) string {
	lang = u.lang(lang)
	return "/" + lang + "/blog/" + u.resolver.OutboundSlug(p, lang)
}

// Category returns "/{lang}/{category}".
func (u *URLs) Category(c *model.Category, lang string) string {
	lang = u.lang(lang)
	return "/" + lang + "/" + u.resolver.OutboundSlug(c, lang)
}

// Product returns "/{lang}/{category}/{product}".
func (u *URLs) Product(c *model.Category, p *model.Product, lang string) string {
	lang = u.lang(lang)
	return "/" + lang + "/" + u.resolver.OutboundSlug(c, lang) + "/" + u.resolver.OutboundSlug(p, lang)
}

// Absolute prefixes path with the site URL.
func (u *URLs) Absolute(path string) string {
	return u.siteURL + path
}

// Alternates maps every supported language to the path returned by build.
func (u *URLs) Alternates(build func(lang string) string) map[string]string {
	out := make(map[string]string, len(slugs.SupportedLanguages))
	for _, lang := range slugs.SupportedLanguages {
		out[lang] = build(lang)
	}
	return out
}
