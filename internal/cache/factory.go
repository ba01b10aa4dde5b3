// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int

	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "atasite:",
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// New creates a Redis cache when RedisURL is set and reachable, otherwise an
// in-memory cache. A Redis connection failure is logged and falls back to memory.
func New(cfg Config, logger *slog.Logger) Cache {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			if logger != nil {
				logger.Info("using redis cache", "prefix", cfg.Prefix)
			}
			return rc
		}
		if logger != nil {
			logger.Warn("redis unavailable, falling back to memory cache", "error", err)
		}
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}
