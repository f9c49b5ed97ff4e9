package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	"github.com/gin-gonic/gin"
)

// Checker is anything that can report its own connectivity
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg    *config.Config
	checks map[string]Checker
}

// NewHandler creates a new meta handler.
// db backs operator accounts, store backs member records; they may be the same database.
func NewHandler(cfg *config.Config, db Checker, store Checker) *Handler {
	return &Handler{
		cfg: cfg,
		checks: map[string]Checker{
			"database": db,
			"store":    store,
		},
	}
}

// Health checks service, database and member store health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	healthy := true
	checks := gin.H{}

	for name, checker := range h.checks {
		start := time.Now()
		if err := checker.HealthCheck(ctx); err != nil {
			healthy = false
			slog.Error("Health check 실패", "check", name, "error", err)
			checks[name] = gin.H{
				"status": "down",
				"error":  err.Error(),
			}
			continue
		}
		checks[name] = gin.H{
			"status":     "up",
			"latency_ms": time.Since(start).Milliseconds(),
		}
	}

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
		"store":       h.cfg.Store.Driver,
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks":  checks,
		})
		return
	}

	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks":  checks,
	})
}
