// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atadizayn/atasite/internal/middleware"
	"github.com/atadizayn/atasite/internal/model"
	"github.com/atadizayn/atasite/internal/seo"
	"github.com/atadizayn/atasite/internal/service"
)

// homePostLimit is the number of recent posts listed on the home page.
const homePostLimit = 10

// FrontendConfig holds site-wide settings of the public handlers.
type FrontendConfig struct {
	SiteName string
	// DisallowRobots blocks all crawlers in robots.txt (staging sites).
	DisallowRobots bool
}

// FrontendHandler serves the public, language-prefixed JSON pages.
type FrontendHandler struct {
	content *service.ContentService
	urls    *service.URLs
	site    seo.SiteConfig
	robots  seo.RobotsConfig
	logger  *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(content *service.ContentService, cfg FrontendConfig, logger *slog.Logger) *FrontendHandler {
	siteURL := content.URLs().Absolute("")
	return &FrontendHandler{
		content: content,
		urls:    content.URLs(),
		site: seo.SiteConfig{
			SiteName:        cfg.SiteName,
			SiteURL:         siteURL,
			DefaultLanguage: content.Resolver().DefaultLanguage(),
		},
		robots: seo.RobotsConfig{
			SiteURL:     siteURL,
			DisallowAll: cfg.DisallowRobots,
		},
		logger: logger,
	}
}

// CategoryView is a category localized for one language.
type CategoryView struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	URL          string        `json:"url"`
	Collection   string        `json:"collection"`
	Description  string        `json:"description,omitempty"`
	RichText     string        `json:"rich_text,omitempty"`
	SEOCanonical string        `json:"seo_canonical,omitempty"`
	Products     []ProductView `json:"products,omitempty"`
}

// ProductView is a product localized for one language.
type ProductView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	RichText    string `json:"rich_text,omitempty"`
}

// PostView is a blog post localized for one language.
type PostView struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	URL             string    `json:"url"`
	Collection      string    `json:"collection"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Content         string    `json:"content,omitempty"`
	PublishDate     time.Time `json:"publish_date"`
}

// HomeView is the home page of one language.
type HomeView struct {
	Language    string                    `json:"language"`
	Collections map[string][]CategoryView `json:"collections"`
	Posts       []PostView                `json:"posts"`
}

func (h *FrontendHandler) categoryView(c *model.Category, lang string, full bool) CategoryView {
	v := CategoryView{
		ID:          c.ID,
		Name:        c.Name.LangOrBase(lang),
		Slug:        h.content.Resolver().OutboundSlug(c, lang),
		URL:         h.urls.Category(c, lang),
		Collection:  c.Collection,
		Description: c.Description.LangOrBase(lang),
	}
	if full {
		v.RichText = c.RichText.LangOrBase(lang)
		v.SEOCanonical = c.SEOCanonical
	}
	return v
}

func (h *FrontendHandler) productView(c *model.Category, p *model.Product, lang string, full bool) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name.LangOrBase(lang),
		Slug:        h.content.Resolver().OutboundSlug(p, lang),
		URL:         h.urls.Product(c, p, lang),
		Description: p.Description.LangOrBase(lang),
	}
	if full {
		v.RichText = p.RichText.LangOrBase(lang)
	}
	return v
}

func (h *FrontendHandler) postView(p *model.BlogPost, lang string, full bool) PostView {
	v := PostView{
		ID:              p.ID,
		Title:           p.Title.LangOrBase(lang),
		Slug:            h.content.Resolver().OutboundSlug(p, lang),
		URL:             h.urls.Post(p, lang),
		Collection:      p.Collection,
		MetaDescription: p.MetaDescription.LangOrBase(lang),
		PublishDate:     p.PublishDate,
	}
	if full {
		v.Content = p.Content.LangOrBase(lang)
	}
	return v
}

// Root handles GET / by redirecting to the home page of the preferred language.
func (h *FrontendHandler) Root(w http.ResponseWriter, r *http.Request) {
	lang := middleware.DetectLanguage(r, h.site.DefaultLanguage)
	http.Redirect(w, r, h.urls.Home(lang), http.StatusFound)
}

// Home handles GET /{lang}/.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	middleware.SetLanguageCookie(w, lang)

	categories, err := h.content.ListCategories(r.Context(), "")
	if err != nil {
		logAndInternalError(w, lang, "failed to list categories", "error", err)
		return
	}
	posts, err := h.content.ListPosts(r.Context(), "", true)
	if err != nil {
		logAndInternalError(w, lang, "failed to list posts", "error", err)
		return
	}

	view := HomeView{
		Language:    lang,
		Collections: make(map[string][]CategoryView),
		Posts:       make([]PostView, 0, min(len(posts), homePostLimit)),
	}
	for i := range categories {
		c := &categories[i]
		view.Collections[c.Collection] = append(view.Collections[c.Collection], h.categoryView(c, lang, false))
	}
	for i := range posts {
		if i == homePostLimit {
			break
		}
		view.Posts = append(view.Posts, h.postView(&posts[i], lang, false))
	}

	meta := seo.BuildMeta(&seo.PageData{
		Lang:  lang,
		Paths: h.urls.Alternates(h.urls.Home),
	}, &h.site)

	writeJSON(w, http.StatusOK, Response{Data: view, SEO: meta})
}

// Post handles GET /{lang}/blog/{slug}.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	slug := chi.URLParam(r, "slug")

	p, err := h.content.PostBySlug(r.Context(), slug, lang)
	if err != nil {
		handleLookupError(w, r, lang, model.BlogPostKind.Name, err)
		return
	}

	canonical := h.urls.Post(&p, lang)
	if canonical != r.URL.Path {
		redirectPermanent(w, r, canonical)
		return
	}

	meta := seo.BuildMeta(&seo.PageData{
		Title:           p.Title.LangOrBase(lang),
		MetaDescription: p.MetaDescription.LangOrBase(lang),
		Body:            p.Content.LangOrBase(lang),
		Lang:            lang,
		Paths:           h.urls.Alternates(func(l string) string { return h.urls.Post(&p, l) }),
		Article:         true,
	}, &h.site)

	writeJSON(w, http.StatusOK, Response{Data: h.postView(&p, lang, true), SEO: meta})
}

// Category handles GET /{lang}/{categorySlug}.
func (h *FrontendHandler) Category(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	slug := chi.URLParam(r, "categorySlug")

	c, err := h.content.CategoryBySlug(r.Context(), slug, lang)
	if err != nil {
		handleLookupError(w, r, lang, model.CategoryKind.Name, err)
		return
	}

	canonical := h.urls.Category(&c, lang)
	if canonical != r.URL.Path {
		redirectPermanent(w, r, canonical)
		return
	}

	products, err := h.content.ListProducts(r.Context(), c.ID)
	if err != nil {
		logAndInternalError(w, lang, "failed to list products", "error", err, "category_id", c.ID)
		return
	}

	view := h.categoryView(&c, lang, true)
	view.Products = make([]ProductView, 0, len(products))
	for i := range products {
		view.Products = append(view.Products, h.productView(&c, &products[i], lang, false))
	}

	meta := seo.BuildMeta(&seo.PageData{
		Title:           c.Name.LangOrBase(lang),
		MetaDescription: c.Description.LangOrBase(lang),
		Body:            c.RichText.LangOrBase(lang),
		Lang:            lang,
		Paths:           h.urls.Alternates(func(l string) string { return h.urls.Category(&c, l) }),
	}, &h.site)

	writeJSON(w, http.StatusOK, Response{Data: view, SEO: meta})
}

// Product handles GET /{lang}/{categorySlug}/{productSlug}.
func (h *FrontendHandler) Product(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	categorySlug := chi.URLParam(r, "categorySlug")
	productSlug := chi.URLParam(r, "productSlug")

	c, p, err := h.content.ProductBySlug(r.Context(), categorySlug, productSlug, lang)
	if err != nil {
		handleLookupError(w, r, lang, model.ProductKind.Name, err)
		return
	}

	canonical := h.urls.Product(&c, &p, lang)
	if canonical != r.URL.Path {
		redirectPermanent(w, r, canonical)
		return
	}

	view := struct {
		ProductView
		Category CategoryView `json:"category"`
	}{
		ProductView: h.productView(&c, &p, lang, true),
		Category:    h.categoryView(&c, lang, false),
	}

	meta := seo.BuildMeta(&seo.PageData{
		Title:           p.Name.LangOrBase(lang),
		MetaDescription: p.Description.LangOrBase(lang),
		Body:            p.RichText.LangOrBase(lang),
		Lang:            lang,
		Paths:           h.urls.Alternates(func(l string) string { return h.urls.Product(&c, &p, l) }),
	}, &h.site)

	writeJSON(w, http.StatusOK, Response{Data: view, SEO: meta})
}

// Sitemap handles GET /sitemap.xml.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := h.content.Sitemap(r.Context())
	if err != nil {
		h.logger.Error("failed to build sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentTypeXML)
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *FrontendHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", ContentTypeText)
	_, _ = w.Write([]byte(seo.BuildRobots(h.robots)))
}

// Routes registers the public routes on r.
func (h *FrontendHandler) Routes(r chi.Router) {
	r.Get(RouteRoot, h.Root)
	r.Get(RouteSitemap, h.Sitemap)
	r.Get(RouteRobots, h.Robots)
	r.Route(RouteLang, func(r chi.Router) {
		r.Use(middleware.Language(h.site.DefaultLanguage))
		r.Get(RouteRoot, h.Home)
		r.Get(RouteBlogSlug, h.Post)
		r.Get(RouteCategorySlug, h.Category)
		r.Get(RouteProductSlug, h.Product)
	})
}
