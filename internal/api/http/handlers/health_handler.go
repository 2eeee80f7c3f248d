package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/store"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Ready means the ticket store is loadable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if _, err := h.store.Tickets(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
