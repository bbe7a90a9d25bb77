package handler

import (
	"retail-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.CheckoutService
}

func NewSaleHandler(s service.CheckoutService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSale runs the checkout flow
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.CreateSale(getOwnerID(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(sale)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSale looks an invoice up by sale id
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID format"})
	}

	sale, err := h.service.GetSaleByID(getOwnerID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}
