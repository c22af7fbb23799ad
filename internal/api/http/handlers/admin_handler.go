package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/observability"
)

// AdminHandler exposes operator-only endpoints.
type AdminHandler struct {
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{metrics: metrics}
}

// Metrics GET /api/admin/metrics. Admin role only.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errs,
	})
}
