// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for sitemap reference
	DisallowAll   bool     // Block all crawlers (for staging sites)
	DisallowPaths []string // Paths to disallow in addition to the admin API
}

// DefaultDisallowPaths are never crawlable.
var DefaultDisallowPaths = []string{
	"/api/",
	"/health",
}

// BuildRobots generates the robots.txt content.
func BuildRobots(cfg RobotsConfig) string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	paths := append(append([]string(nil), DefaultDisallowPaths...), cfg.DisallowPaths...)
	for _, path := range paths {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(cfg.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}

	return sb.String()
}
