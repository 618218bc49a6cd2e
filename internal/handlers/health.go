package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"adarchive/internal/contextutil"
)

// HealthHandler reports the state of the database and the thumbnail cache
// directory.
type HealthHandler struct {
	db           *sql.DB
	cacheDir     string
	checkTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, cacheDir string) *HealthHandler {
	return &HealthHandler{
		db:           db,
		cacheDir:     cacheDir,
		checkTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health. Returns 200 OK if healthy, 503 if not.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	} else {
		checks["database"] = "ok"
	}

	if info, err := os.Stat(h.cacheDir); err != nil || !info.IsDir() {
		logger.WarnContext(ctx, "thumbnail cache directory check failed", "dir", h.cacheDir, "error", err)
		checks["thumbnail_cache"] = "error"
		issues = append(issues, "thumbnail_cache_unavailable")
	} else {
		checks["thumbnail_cache"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	writeJSON(w, r, httpStatus, response)
}
