package service

import (
	"fmt"
	"math"

	"retail-pos-api/internal/repository"
	"retail-pos-api/pkg/cache"
)

// ReportPeriod selects the time bucket for period-based reports.
type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodMonthly ReportPeriod = "monthly"
)

// ParseReportPeriod falls back to monthly for anything unrecognized.
func ParseReportPeriod(s string) ReportPeriod {
	if s == string(PeriodDaily) {
		return PeriodDaily
	}
	return PeriodMonthly
}

// dateFormat returns the Postgres to_char pattern for the period bucket.
func (p ReportPeriod) dateFormat() string {
	if p == PeriodDaily {
		return "YYYY-MM-DD"
	}
	return "YYYY-MM"
}

type ProfitLossDataPoint struct {
	TimePeriod string  `json:"timePeriod"`
	Profit     float64 `json:"profit"`
	Loss       float64 `json:"loss"`
}

type AverageOrderValueDataPoint struct {
	TimePeriod string  `json:"timePeriod"`
	AOV        float64 `json:"aov"`
}

type SalesAmountDistributionDataPoint struct {
	SalesRange       string `json:"salesRange"`
	TransactionCount int    `json:"transactionCount"`
}

type ProductSalesParetoDataPoint struct {
	ProductName          string  `json:"productName"`
	SalesAmount          float64 `json:"salesAmount"`
	CumulativePercentage float64 `json:"cumulativePercentage"`
}

type ReportService interface {
	SalesByPeriod(ownerID string, period ReportPeriod) ([]repository.SalesDataPoint, error)
	InventoryByCategory(ownerID string) ([]repository.InventoryDataPoint, error)
	TopSellingProducts(ownerID string, limit int) ([]repository.TopSellingProductDataPoint, error)
	CustomerGrowthByPeriod(ownerID string, period ReportPeriod) ([]repository.CustomerGrowthDataPoint, error)
	ProfitLossByPeriod(ownerID string, period ReportPeriod) ([]ProfitLossDataPoint, error)
	AverageOrderValueByPeriod(ownerID string, period ReportPeriod) ([]AverageOrderValueDataPoint, error)
	SalesAmountDistribution(ownerID string) ([]SalesAmountDistributionDataPoint, error)
	ProductSalesPareto(ownerID string, limit int) ([]ProductSalesParetoDataPoint, error)
	DashboardStats(ownerID string) (*repository.DashboardStats, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	cache      *cache.ReportCache // nil disables caching
}

func NewReportService(rRepo repository.ReportRepository, c *cache.ReportCache) ReportService {
	return &reportService{reportRepo: rRepo, cache: c}
}

func reportKey(ownerID, name string, variant interface{}) string {
	return fmt.Sprintf("reports:%s:%s:%v", ownerID, name, variant)
}

func (s *reportService) SalesByPeriod(ownerID string, period ReportPeriod) ([]repository.SalesDataPoint, error) {
	key := reportKey(ownerID, "sales", period)
	var cached []repository.SalesDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	data, err := s.reportRepo.SalesByPeriod(ownerID, period.dateFormat())
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) InventoryByCategory(ownerID string) ([]repository.InventoryDataPoint, error) {
	key := reportKey(ownerID, "inventory", "category")
	var cached []repository.InventoryDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	data, err := s.reportRepo.InventoryByCategory(ownerID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) TopSellingProducts(ownerID string, limit int) ([]repository.TopSellingProductDataPoint, error) {
	if limit <= 0 {
		limit = 5
	}
	key := reportKey(ownerID, "top-products", limit)
	var cached []repository.TopSellingProductDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	data, err := s.reportRepo.TopSellingProducts(ownerID, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) CustomerGrowthByPeriod(ownerID string, period ReportPeriod) ([]repository.CustomerGrowthDataPoint, error) {
	key := reportKey(ownerID, "customer-growth", period)
	var cached []repository.CustomerGrowthDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	data, err := s.reportRepo.CustomerGrowthByPeriod(ownerID, period.dateFormat())
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

// ProfitLossByPeriod reports revenue as profit; cost data is not tracked, so
// loss is always zero.
func (s *reportService) ProfitLossByPeriod(ownerID string, period ReportPeriod) ([]ProfitLossDataPoint, error) {
	sales, err := s.SalesByPeriod(ownerID, period)
	if err != nil {
		return nil, err
	}
	results := make([]ProfitLossDataPoint, 0, len(sales))
	for _, point := range sales {
		results = append(results, ProfitLossDataPoint{
			TimePeriod: point.TimePeriod,
			Profit:     point.Sales,
			Loss:       0,
		})
	}
	return results, nil
}

func (s *reportService) AverageOrderValueByPeriod(ownerID string, period ReportPeriod) ([]AverageOrderValueDataPoint, error) {
	key := reportKey(ownerID, "aov", period)
	var cached []AverageOrderValueDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	rows, err := s.reportRepo.SaleTotalsByPeriod(ownerID, period.dateFormat())
	if err != nil {
		return nil, err
	}
	data := buildAverageOrderValue(rows)
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) SalesAmountDistribution(ownerID string) ([]SalesAmountDistributionDataPoint, error) {
	key := reportKey(ownerID, "amount-distribution", "fixed")
	var cached []SalesAmountDistributionDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	rows, err := s.reportRepo.SalesAmountBuckets(ownerID)
	if err != nil {
		return nil, err
	}
	data := buildDistribution(rows)
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) ProductSalesPareto(ownerID string, limit int) ([]ProductSalesParetoDataPoint, error) {
	if limit <= 0 {
		limit = 7
	}
	key := reportKey(ownerID, "pareto", limit)
	var cached []ProductSalesParetoDataPoint
	if s.cache.Get(key, &cached) {
		return cached, nil
	}
	rows, err := s.reportRepo.ProductSales(ownerID)
	if err != nil {
		return nil, err
	}
	data := buildPareto(rows, limit)
	s.cache.Set(key, data)
	return data, nil
}

func (s *reportService) DashboardStats(ownerID string) (*repository.DashboardStats, error) {
	return s.reportRepo.DashboardStats(ownerID)
}

// buildAverageOrderValue computes AOV per bucket, 0 for empty buckets.
func buildAverageOrderValue(rows []repository.PeriodTotals) []AverageOrderValueDataPoint {
	results := make([]AverageOrderValueDataPoint, 0, len(rows))
	for _, row := range rows {
		aov := 0.0
		if row.SaleCount > 0 {
			aov = round(row.TotalAmount/float64(row.SaleCount), 2)
		}
		results = append(results, AverageOrderValueDataPoint{
			TimePeriod: row.TimePeriod,
			AOV:        aov,
		})
	}
	return results
}

// bucketLabel maps a histogram lower boundary to its display range.
func bucketLabel(lowerBound int) string {
	switch lowerBound {
	case 0:
		return "Rs. 0-50"
	case 51:
		return "Rs. 51-100"
	case 101:
		return "Rs. 101-200"
	case 201:
		return "Rs. 201-500"
	case 501:
		return "Rs. 501-1000"
	case 1001:
		return "Rs. 1001+"
	default:
		return "Other"
	}
}

func buildDistribution(rows []repository.AmountBucket) []SalesAmountDistributionDataPoint {
	results := make([]SalesAmountDistributionDataPoint, 0, len(rows))
	for _, row := range rows {
		results = append(results, SalesAmountDistributionDataPoint{
			SalesRange:       bucketLabel(row.Bucket),
			TransactionCount: row.TransactionCount,
		})
	}
	return results
}

// buildPareto computes running cumulative-percentage contribution over the
// full descending-sorted set, then truncates to limit. The percentage is
// non-decreasing and reaches 100 (within rounding) at the last unfiltered row.
func buildPareto(rows []repository.ProductSalesRow, limit int) []ProductSalesParetoDataPoint {
	if len(rows) == 0 {
		return []ProductSalesParetoDataPoint{}
	}

	var overallTotal float64
	for _, row := range rows {
		overallTotal += row.TotalSalesAmount
	}

	results := make([]ProductSalesParetoDataPoint, 0, len(rows))
	var cumulative float64
	for _, row := range rows {
		point := ProductSalesParetoDataPoint{
			ProductName: row.ProductName,
			SalesAmount: row.TotalSalesAmount,
		}
		if overallTotal > 0 {
			cumulative += row.TotalSalesAmount
			point.CumulativePercentage = round(cumulative/overallTotal*100, 1)
		}
		results = append(results, point)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func round(x float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(x*factor) / factor
}
