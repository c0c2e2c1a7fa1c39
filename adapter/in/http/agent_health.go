package http

import (
	"context"
	"time"

	"agent_server/adapter/in/worker"
	"agent_server/infra/database"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	db   *database.DB
	pool *worker.EnrichPool
}

func NewHealthHandler(db *database.DB, pool *worker.EnrichPool) *HealthHandler {
	return &HealthHandler{db: db, pool: pool}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]any)
	allHealthy := true

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			checks["sqlite"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			checks["sqlite"] = "healthy"
		}
	} else {
		checks["sqlite"] = "not configured"
	}

	if h.pool != nil {
		m := h.pool.Metrics()
		checks["enrich_pool"] = fiber.Map{
			"processed": m.JobsProcessed,
			"failed":    m.JobsFailed,
			"dropped":   m.JobsDropped,
			"queued":    m.JobsQueued,
		}
	}

	status := "ready"
	statusCode := fiber.StatusOK
	if !allHealthy {
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
