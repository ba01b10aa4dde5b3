// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atadizayn/atasite/internal/cache"
)

// Health check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

const (
	healthCheckTimeout = 2 * time.Second
	healthProbeKey     = "health:probe"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	cache      cache.Cache
	adminToken string
	version    string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler. The cache is optional.
// Requests carrying the admin bearer token get detailed output.
func NewHealthHandler(db *sql.DB, c cache.Cache, adminToken, version string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		cache:      c,
		adminToken: adminToken,
		version:    version,
		startTime:  time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatusPublic is the minimal health response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus represents the overall health status (authenticated callers only).
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests.
// Returns minimal status for unauthenticated callers, full details for the admin.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx),
		"cache":    h.checkCache(ctx),
	}

	overallStatus := StatusHealthy
	switch {
	case checks["database"].Status != StatusHealthy:
		overallStatus = StatusUnhealthy
	case checks["cache"].Status != StatusHealthy:
		overallStatus = StatusDegraded
	}

	statusCode := http.StatusOK
	if overallStatus == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	if !h.isAdmin(r) {
		writeJSON(w, statusCode, HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	writeJSON(w, statusCode, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	dbCheck := h.checkDatabase(ctx)
	if dbCheck.Status == StatusHealthy {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	resp := map[string]string{"status": "not_ready"}
	// Only include error details for the admin
	if h.isAdmin(r) {
		resp["message"] = dbCheck.Message
	}
	writeJSON(w, http.StatusServiceUnavailable, resp)
}

// isAdmin checks the request for the admin bearer token.
func (h *HealthHandler) isAdmin(r *http.Request) bool {
	if h.adminToken == "" {
		return false
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(h.adminToken)) == 1
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  StatusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	return Check{
		Status:  StatusHealthy,
		Message: "Connected",
		Latency: latency.String(),
	}
}

// checkCache round-trips a probe value through the cache.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: StatusHealthy, Message: "Disabled"}
	}

	start := time.Now()
	want := []byte(start.UTC().Format(time.RFC3339Nano))
	if err := h.cache.Set(ctx, healthProbeKey, want, time.Minute); err != nil {
		return Check{Status: StatusDegraded, Message: "Write failed: " + err.Error()}
	}
	got, err := h.cache.Get(ctx, healthProbeKey)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: StatusDegraded, Message: "Read failed: " + err.Error(), Latency: latency.String()}
	}
	if string(got) != string(want) {
		return Check{Status: StatusDegraded, Message: "Probe value mismatch", Latency: latency.String()}
	}

	return Check{Status: StatusHealthy, Message: "OK", Latency: latency.String()}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Routes registers the health routes on r.
func (h *HealthHandler) Routes(r chi.Router) {
	r.Get(RouteHealth, h.Health)
	r.Get(RouteHealthLive, h.Liveness)
	r.Get(RouteHealthReady, h.Readiness)
}
