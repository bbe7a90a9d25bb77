package repository

import (
	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SalesDataPoint is total sales amount per time bucket.
type SalesDataPoint struct {
	TimePeriod string  `json:"timePeriod"`
	Sales      float64 `json:"sales"`
}

// InventoryDataPoint is total stock per product category.
type InventoryDataPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopSellingProductDataPoint counts units sold per product.
type TopSellingProductDataPoint struct {
	Name  string `json:"name"`
	Sales int    `json:"sales"`
}

// CustomerGrowthDataPoint counts new customers per time bucket.
type CustomerGrowthDataPoint struct {
	TimePeriod string `json:"timePeriod"`
	Customers  int    `json:"customers"`
}

// PeriodTotals carries the raw sums needed for average-order-value math.
type PeriodTotals struct {
	TimePeriod  string  `json:"timePeriod"`
	TotalAmount float64 `json:"totalAmount"`
	SaleCount   int     `json:"saleCount"`
}

// AmountBucket is a histogram row keyed by its lower boundary.
type AmountBucket struct {
	Bucket           int `json:"bucket"`
	TransactionCount int `json:"transactionCount"`
}

// ProductSalesRow is a Pareto input row, sorted descending by amount.
type ProductSalesRow struct {
	ProductID        uuid.UUID `json:"productId"`
	ProductName      string    `json:"productName"`
	TotalSalesAmount float64   `json:"totalSalesAmount"`
}

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalProducts  int64   `json:"totalProducts"`
	LowStockCount  int64   `json:"lowStockCount"`
	TotalValuation float64 `json:"totalValuation"`
}

type ReportRepository interface {
	SalesByPeriod(ownerID, dateFormat string) ([]SalesDataPoint, error)
	InventoryByCategory(ownerID string) ([]InventoryDataPoint, error)
	TopSellingProducts(ownerID string, limit int) ([]TopSellingProductDataPoint, error)
	CustomerGrowthByPeriod(ownerID, dateFormat string) ([]CustomerGrowthDataPoint, error)
	SaleTotalsByPeriod(ownerID, dateFormat string) ([]PeriodTotals, error)
	SalesAmountBuckets(ownerID string) ([]AmountBucket, error)
	ProductSales(ownerID string) ([]ProductSalesRow, error)
	DashboardStats(ownerID string) (*DashboardStats, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) SalesByPeriod(ownerID, dateFormat string) ([]SalesDataPoint, error) {
	var results []SalesDataPoint
	err := r.db.Raw(`
		SELECT to_char(date, ?) AS time_period,
		       COALESCE(SUM(total_amount), 0) AS sales
		FROM sales
		WHERE owner_id = ? AND deleted_at IS NULL
		GROUP BY 1
		ORDER BY 1 ASC`, dateFormat, ownerID).Scan(&results).Error
	return results, err
}

func (r *reportRepo) InventoryByCategory(ownerID string) ([]InventoryDataPoint, error) {
	var results []InventoryDataPoint
	err := r.db.Raw(`
		SELECT category AS name,
		       COALESCE(SUM(stock), 0) AS value
		FROM products
		WHERE owner_id = ? AND deleted_at IS NULL
		GROUP BY category
		ORDER BY category ASC`, ownerID).Scan(&results).Error
	return results, err
}

func (r *reportRepo) TopSellingProducts(ownerID string, limit int) ([]TopSellingProductDataPoint, error) {
	var results []TopSellingProductDataPoint
	err := r.db.Raw(`
		SELECT MAX(i.product_name) AS name,
		       COALESCE(SUM(i.quantity), 0) AS sales
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.owner_id = ? AND s.deleted_at IS NULL
		GROUP BY i.product_id
		ORDER BY sales DESC
		LIMIT ?`, ownerID, limit).Scan(&results).Error
	return results, err
}

func (r *reportRepo) CustomerGrowthByPeriod(ownerID, dateFormat string) ([]CustomerGrowthDataPoint, error) {
	var results []CustomerGrowthDataPoint
	err := r.db.Raw(`
		SELECT to_char(created_at, ?) AS time_period,
		       COUNT(*) AS customers
		FROM customers
		WHERE owner_id = ? AND deleted_at IS NULL
		GROUP BY 1
		ORDER BY 1 ASC`, dateFormat, ownerID).Scan(&results).Error
	return results, err
}

func (r *reportRepo) SaleTotalsByPeriod(ownerID, dateFormat string) ([]PeriodTotals, error) {
	var results []PeriodTotals
	err := r.db.Raw(`
		SELECT to_char(date, ?) AS time_period,
		       COALESCE(SUM(total_amount), 0) AS total_amount,
		       COUNT(*) AS sale_count
		FROM sales
		WHERE owner_id = ? AND deleted_at IS NULL
		GROUP BY 1
		ORDER BY 1 ASC`, dateFormat, ownerID).Scan(&results).Error
	return results, err
}

// SalesAmountBuckets groups transaction amounts into fixed boundaries
// 0 / 51 / 101 / 201 / 501 / 1001+, keyed by the lower boundary.
func (r *reportRepo) SalesAmountBuckets(ownerID string) ([]AmountBucket, error) {
	var results []AmountBucket
	err := r.db.Raw(`
		SELECT CASE
		         WHEN total_amount < 51 THEN 0
		         WHEN total_amount < 101 THEN 51
		         WHEN total_amount < 201 THEN 101
		         WHEN total_amount < 501 THEN 201
		         WHEN total_amount < 1001 THEN 501
		         ELSE 1001
		       END AS bucket,
		       COUNT(*) AS transaction_count
		FROM sales
		WHERE owner_id = ? AND deleted_at IS NULL
		GROUP BY 1
		ORDER BY 1 ASC`, ownerID).Scan(&results).Error
	return results, err
}

func (r *reportRepo) ProductSales(ownerID string) ([]ProductSalesRow, error) {
	var results []ProductSalesRow
	err := r.db.Raw(`
		SELECT i.product_id AS product_id,
		       MAX(i.product_name) AS product_name,
		       COALESCE(SUM(i.total_price), 0) AS total_sales_amount
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.owner_id = ? AND s.deleted_at IS NULL
		GROUP BY i.product_id
		ORDER BY total_sales_amount DESC`, ownerID).Scan(&results).Error
	return results, err
}

func (r *reportRepo) DashboardStats(ownerID string) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).
		Where("owner_id = ?", ownerID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("owner_id = ? AND stock < ?", ownerID, model.LowStockThreshold).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(stock * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
