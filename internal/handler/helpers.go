package handler

import (
	"errors"

	"retail-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getOwnerID returns the authenticated principal's id (set by RequireAuth).
// Every data operation is scoped by it.
func getOwnerID(c *fiber.Ctx) string {
	ownerID := c.Locals("user_id")
	if ownerID == nil {
		return ""
	}
	return ownerID.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps service errors to the wire error payloads.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(409).JSON(fiber.Map{
			"error":             err.Error(),
			"insufficientStock": stockErr.Items,
		})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrCustomerEmailTaken):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}
