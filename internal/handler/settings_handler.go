package handler

import (
	"retail-pos-api/internal/model"
	"retail-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

// GetSettings returns the owner's store settings, defaults when unsaved
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.service.GetSettings(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch store settings"})
	}
	return c.JSON(settings)
}

// UpdateSettings upserts the owner's store settings
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings model.StoreSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateSettings(getOwnerID(c), &settings)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": updated})
}
