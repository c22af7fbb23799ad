package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	pg    *persistence.Postgres
	redis *persistence.Redis
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis}
}

// Live GET /api/health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /api/health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	healthy := true

	if h.pg == nil || h.pg.PoolHandle() == nil {
		checks["postgres"] = "unconfigured"
	} else if err := h.pg.PoolHandle().Ping(c.Context()); err != nil {
		checks["postgres"] = "unreachable"
		healthy = false
	}

	if err := h.redis.Ping(c.Context()); err != nil {
		checks["redis"] = "unreachable"
	}

	status := fiber.StatusOK
	if !healthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"checks": checks})
}
