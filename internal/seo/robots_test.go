// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestBuildRobots(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RobotsConfig
		want    []string
		notWant []string
	}{
		{
			name: "default",
			cfg:  RobotsConfig{SiteURL: "https://example.com/"},
			want: []string{"User-agent: *\n", "Disallow: /api/\n", "Disallow: /health\n", "Allow: /\n",
				"Sitemap: https://example.com/sitemap.xml\n"},
		},
		{
			name:    "disallow all",
			cfg:     RobotsConfig{SiteURL: "https://example.com", DisallowAll: true},
			want:    []string{"Disallow: /\n"},
			notWant: []string{"Sitemap:", "Allow: /"},
		},
		{
			name:    "custom paths",
			cfg:     RobotsConfig{DisallowPaths: []string{"/search"}},
			want:    []string{"Disallow: /search\n"},
			notWant: []string{"Sitemap:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRobots(tt.cfg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("robots.txt missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("robots.txt should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestBuildRobots_DoesNotMutateDefaults(t *testing.T) {
	_ = BuildRobots(RobotsConfig{DisallowPaths: []string{"/x"}})
	if len(DefaultDisallowPaths) != 2 {
		t.Errorf("DefaultDisallowPaths = %v", DefaultDisallowPaths)
	}
}
