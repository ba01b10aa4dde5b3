// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from ATA_ environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/util"
)

// knownWeakTokens contains example admin tokens that must be rejected in production.
var knownWeakTokens = []string{
	"change-me",
	"REPLACE_WITH_YOUR_OWN_ADMIN_TOKEN",
}

// MinAdminTokenLength is the minimum admin token length accepted in production.
const MinAdminTokenLength = 24

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"ATA_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"ATA_DB_PATH" envDefault:"./data/atasite.db"`
	DBDSN      string `env:"ATA_DB_DSN"` // MySQL DSN, e.g. user:pass@tcp(localhost:3306)/atasite
	ServerHost string `env:"ATA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"ATA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ATA_ENV" envDefault:"development"`
	LogLevel   string `env:"ATA_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"ATA_SITE_URL" envDefault:"http://localhost:8080"`

	// Slug configuration
	DefaultLanguage   string   `env:"ATA_DEFAULT_LANGUAGE" envDefault:"tr"`
	ReservedSlugs     []string `env:"ATA_RESERVED_SLUGS" envSeparator:"," envDefault:"blog,admin,search,politikalar,i18n,ckeditor5,kitchen_sink,injection-products,pos-display-stands,api,sitemap-xml"`
	SlugFuzzyFallback bool     `env:"ATA_SLUG_FUZZY_FALLBACK" envDefault:"true"`

	// Cache configuration
	RedisURL     string `env:"ATA_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"ATA_CACHE_PREFIX" envDefault:"atasite:"` // Redis key prefix
	CacheTTL     int    `env:"ATA_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"ATA_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// AdminToken guards the admin API. Empty disables the admin API.
	AdminToken string `env:"ATA_ADMIN_TOKEN"`

	// Event log retention in days; older events are pruned at startup.
	EventRetentionDays int `env:"ATA_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"ATA_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AdminEnabled returns true if the admin API is enabled.
func (c Config) AdminEnabled() bool {
	return c.AdminToken != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "sqlite3":
	case "mysql":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("ATA_DB_DSN is required when ATA_DB_DRIVER is mysql")
		}
	default:
		return nil, fmt.Errorf("ATA_DB_DRIVER must be sqlite, sqlite3 or mysql, got %q", cfg.DBDriver)
	}

	cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage))
	if !util.IsValidLangCode(cfg.DefaultLanguage) {
		return nil, fmt.Errorf("ATA_DEFAULT_LANGUAGE must be a two-letter code, got %q", cfg.DefaultLanguage)
	}
	if !slugs.IsSupported(cfg.DefaultLanguage) {
		return nil, fmt.Errorf("ATA_DEFAULT_LANGUAGE must be one of %s, got %q",
			strings.Join(slugs.SupportedLanguages, ", "), cfg.DefaultLanguage)
	}

	reserved := cfg.ReservedSlugs[:0]
	for _, word := range cfg.ReservedSlugs {
		if w := util.Slugify(word); w != "" {
			reserved = append(reserved, w)
		}
	}
	cfg.ReservedSlugs = reserved

	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if cfg.AdminToken != "" && !cfg.IsDevelopment() {
		if len(cfg.AdminToken) < MinAdminTokenLength {
			return nil, fmt.Errorf("ATA_ADMIN_TOKEN must be at least %d bytes long in %s, got %d bytes; "+
				"generate a secure token with: openssl rand -base64 32",
				MinAdminTokenLength, cfg.Env, len(cfg.AdminToken))
		}
		for _, weak := range knownWeakTokens {
			if cfg.AdminToken == weak {
				return nil, fmt.Errorf("ATA_ADMIN_TOKEN is a known default value and must not be used")
			}
		}
		if !hasMinimumEntropy(cfg.AdminToken) {
			slog.Warn("ATA_ADMIN_TOKEN has low character diversity; " +
				"consider generating a random token with: openssl rand -base64 32")
		}
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
