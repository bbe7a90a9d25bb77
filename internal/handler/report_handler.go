package handler

import (
	"strconv"

	"retail-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func queryPeriod(c *fiber.Ctx) service.ReportPeriod {
	return service.ParseReportPeriod(c.Query("period", "monthly"))
}

func queryLimit(c *fiber.Ctx, fallback int) int {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

// GetSalesByPeriod returns total sales per time bucket
// GET /api/v1/reports/sales?period=daily|monthly
func (h *ReportHandler) GetSalesByPeriod(c *fiber.Ctx) error {
	data, err := h.service.SalesByPeriod(getOwnerID(c), queryPeriod(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales report"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetInventoryByCategory(c *fiber.Ctx) error {
	data, err := h.service.InventoryByCategory(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch inventory report"})
	}
	return c.JSON(data)
}

// GetTopSellingProducts ranks products by units sold
// GET /api/v1/reports/top-products?limit=5
func (h *ReportHandler) GetTopSellingProducts(c *fiber.Ctx) error {
	data, err := h.service.TopSellingProducts(getOwnerID(c), queryLimit(c, 5))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top products"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetCustomerGrowth(c *fiber.Ctx) error {
	data, err := h.service.CustomerGrowthByPeriod(getOwnerID(c), queryPeriod(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customer growth"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetProfitLoss(c *fiber.Ctx) error {
	data, err := h.service.ProfitLossByPeriod(getOwnerID(c), queryPeriod(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch profit/loss report"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetAverageOrderValue(c *fiber.Ctx) error {
	data, err := h.service.AverageOrderValueByPeriod(getOwnerID(c), queryPeriod(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch average order value"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetSalesAmountDistribution(c *fiber.Ctx) error {
	data, err := h.service.SalesAmountDistribution(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales distribution"})
	}
	return c.JSON(data)
}

// GetProductSalesPareto ranks products by revenue share
// GET /api/v1/reports/pareto?limit=7
func (h *ReportHandler) GetProductSalesPareto(c *fiber.Ctx) error {
	data, err := h.service.ProductSalesPareto(getOwnerID(c), queryLimit(c, 7))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pareto report"})
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
