// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/atadizayn/atasite/internal/cache"
	"github.com/atadizayn/atasite/internal/config"
	"github.com/atadizayn/atasite/internal/handler"
	"github.com/atadizayn/atasite/internal/handler/api"
	"github.com/atadizayn/atasite/internal/i18n"
	"github.com/atadizayn/atasite/internal/logging"
	"github.com/atadizayn/atasite/internal/middleware"
	"github.com/atadizayn/atasite/internal/scheduler"
	"github.com/atadizayn/atasite/internal/service"
	"github.com/atadizayn/atasite/internal/slugs"
	"github.com/atadizayn/atasite/internal/store"
	"github.com/atadizayn/atasite/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const (
	siteName = "Ata Dizayn"

	// Admin API rate limit per client IP.
	adminRateLimit = 5
	adminRateBurst = 20
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "atasite - localized blog and product catalog\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_DB_DRIVER          sqlite|sqlite3|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_DB_PATH            SQLite database path (default: ./data/atasite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_DB_DSN             MySQL DSN (required for mysql)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_SITE_URL           Public site URL used in canonical links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_DEFAULT_LANGUAGE   Default content language (default: tr)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_RESERVED_SLUGS     Comma separated slugs that records may not use\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ATA_ADMIN_TOKEN        Bearer token of the admin API (required in production)\n")
	}

	flag.Parse()

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	i18n.SetDefaultLanguage(cfg.DefaultLanguage)
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages, "default", cfg.DefaultLanguage)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Upgrade logger to also write WARN and ERROR logs to the event log
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	appCache := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheTTLDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() { _ = appCache.Close() }()

	resolver := slugs.NewResolver(slugs.Options{
		DefaultLanguage: cfg.DefaultLanguage,
		Reserved:        cfg.ReservedSlugs,
		FuzzyFallback:   cfg.SlugFuzzyFallback,
		Cache:           appCache,
		CacheTTL:        cfg.CacheTTLDuration(),
		Logger:          logger,
	})
	events := service.NewEventService(db, logger)
	content := service.NewContentService(db, service.ContentOptions{
		Resolver: resolver,
		URLs:     service.NewURLs(cfg.SiteURL, resolver),
		Events:   events,
		Cache:    appCache,
		Logger:   logger,
	})

	ctx := context.Background()
	if cfg.DoSeed {
		if err := content.Seed(ctx); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	sched, err := newScheduler(cfg, content, events, logger)
	if err != nil {
		return fmt.Errorf("configuring scheduler: %w", err)
	}
	if cfg.EventRetentionDays > 0 {
		_ = sched.RunNow(jobPruneEvents)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	handler.NewHealthHandler(db, appCache, cfg.AdminToken, info.Short()).Routes(r)

	apiHandler := api.NewHandler(content, events, logger)
	limiter := middleware.NewRateLimiter(adminRateLimit, adminRateBurst)
	r.Route(handler.RouteAPI, func(r chi.Router) {
		r.Use(limiter.Middleware())
		r.Use(middleware.AdminAuth(cfg.AdminToken))
		apiHandler.Routes(r)
	})
	if !cfg.AdminEnabled() {
		slog.Warn("admin API disabled, ATA_ADMIN_TOKEN is not set")
	}

	handler.NewFrontendHandler(content, handler.FrontendConfig{
		SiteName:       siteName,
		DisallowRobots: cfg.IsDevelopment(),
	}, logger).Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.Short())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// Scheduled job names.
const (
	jobPruneEvents  = "prune-events"
	jobPublishWatch = "publish-watch"
)

// newScheduler registers the maintenance jobs.
func newScheduler(cfg *config.Config, content *service.ContentService, events *service.EventService, logger *slog.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(logger)

	if cfg.EventRetentionDays > 0 {
		maxAge := time.Duration(cfg.EventRetentionDays) * 24 * time.Hour
		err := sched.Register(scheduler.Job{
			Name:     jobPruneEvents,
			Schedule: "0 3 * * *",
			Run: func(ctx context.Context) error {
				n, err := events.Prune(ctx, maxAge)
				if err != nil {
					return err
				}
				if n > 0 {
					logger.Info("pruned event log", "deleted", n, "retention_days", cfg.EventRetentionDays)
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
	}

	// Runs of one job never overlap, so last needs no lock.
	last := time.Now()
	err := sched.Register(scheduler.Job{
		Name:     jobPublishWatch,
		Schedule: "* * * * *",
		Run: func(ctx context.Context) error {
			now := time.Now()
			if _, err := content.PublishDue(ctx, last, now); err != nil {
				return err
			}
			last = now
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// openDatabase opens the configured database and applies pending migrations.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	dbCfg := store.DefaultDBConfig()
	dbCfg.Driver = cfg.DBDriver
	dbCfg.Path = cfg.DBPath
	dbCfg.DSN = cfg.DBDSN

	if dbCfg.Driver != store.DriverMySQL {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", dbCfg.Driver)
	db, err := store.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db, dbCfg.Driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	return db, nil
}
