package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"novalink-bot/services"
)

// AdminHandler serves the operational endpoints behind the admin key.
type AdminHandler struct {
	Knowledge *services.KnowledgeCache
}

func NewAdminHandler(knowledge *services.KnowledgeCache) *AdminHandler {
	return &AdminHandler{Knowledge: knowledge}
}

// RefreshKnowledge forces a knowledge list refresh ahead of the TTL.
func (h *AdminHandler) RefreshKnowledge(c *fiber.Ctx) error {
	if h.Knowledge == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "knowledge cache not configured",
		})
	}

	if err := h.Knowledge.Refresh(c.Context()); err != nil {
		slog.Error("Forced knowledge refresh failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "knowledge source unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "refreshed",
		"items":  len(h.Knowledge.Items(c.Context())),
	})
}

// ListLeads returns recent captured leads, optionally filtered by action.
func (h *AdminHandler) ListLeads(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	leads, err := services.ListLeads(c.Context(), c.Query("action"), limit)
	if err != nil {
		slog.Error("Failed to list leads", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list leads",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(leads),
		"leads": leads,
	})
}
