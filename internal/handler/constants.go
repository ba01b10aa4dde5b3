// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLang is the language prefix of public routes.
	RouteLang = "/{lang:[a-zA-Z]{2}}"
	// RouteBlogSlug is the blog post route under a language prefix.
	RouteBlogSlug = "/blog/{slug}"
	// RouteCategorySlug is the category route under a language prefix.
	RouteCategorySlug = "/{categorySlug}"
	// RouteProductSlug is the product route under a language prefix.
	RouteProductSlug = "/{categorySlug}/{productSlug}"

	// RouteSitemap is the sitemap route.
	RouteSitemap = "/sitemap.xml"
	// RouteRobots is the robots.txt route.
	RouteRobots = "/robots.txt"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe route.
	RouteHealthReady = "/health/ready"

	// RouteAPI is the admin API prefix.
	RouteAPI = "/api/v1"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)
