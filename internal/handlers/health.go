package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
)

const apiVersion = "1.0.0"

// Pinger is anything whose health can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

type statsReporter interface {
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
}

type HealthHandler struct {
	database Pinger
	cache    Pinger
}

// NewHealthHandler creates a health handler. cache may be nil when caching is
// disabled.
func NewHealthHandler(database, cache Pinger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	health := dto.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]dto.ServiceStatus{
			"api": {Status: "ok"},
		},
		Version: apiVersion,
	}

	health.Services["database"] = probe(ctx, h.database)
	if health.Services["database"].Status != "ok" {
		health.Status = "degraded"
	}

	// A missing cache only slows reads down
	if h.cache != nil {
		status := probe(ctx, h.cache)
		if reporter, ok := h.cache.(statsReporter); ok && status.Status == "ok" {
			if stats, err := reporter.GetCacheStats(ctx); err == nil {
				status.Details = stats
			}
		}
		health.Services["cache"] = status
	}

	statusCode := http.StatusOK
	if health.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, statusCode, "Health check completed", health)
}

func probe(ctx context.Context, p Pinger) dto.ServiceStatus {
	if p == nil {
		return dto.ServiceStatus{Status: "error", Error: "not configured"}
	}
	if err := p.Ping(ctx); err != nil {
		return dto.ServiceStatus{Status: "error", Error: err.Error()}
	}
	return dto.ServiceStatus{Status: "ok"}
}

func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Balatro Game Backend API",
		"version":     apiVersion,
		"description": "Scoring and persistence backend for a poker roguelike",
		"endpoints": map[string][]string{
			"gameState": {
				"POST /api/game-state - Save game state",
				"GET /api/game-state/{userId} - Load game state",
				"DELETE /api/game-state/{userId} - Delete game state",
			},
			"highscores": {
				"POST /api/highscores - Save highscore",
				"GET /api/highscores - List highscores",
				"GET /api/highscores/user/{userId} - User best highscore and rank",
			},
			"auth": {
				"POST /api/auth/guest - Create guest account",
				"POST /api/auth/resume - Resume guest account",
			},
			"system": {
				"GET /api/health - Health status",
				"GET /api/info - API information",
				"GET /ws?token= - Live game session",
			},
		},
		"timestamp": time.Now().UTC(),
	}

	writeJSONResponse(w, http.StatusOK, "API information loaded", info)
}
