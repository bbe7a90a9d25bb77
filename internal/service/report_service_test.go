package service

import (
	"testing"

	"retail-pos-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	saleTotals   []repository.PeriodTotals
	buckets      []repository.AmountBucket
	productSales []repository.ProductSalesRow
	salesByP     []repository.SalesDataPoint
}

func (r *fakeReportRepo) SalesByPeriod(ownerID, dateFormat string) ([]repository.SalesDataPoint, error) {
	return r.salesByP, nil
}

func (r *fakeReportRepo) InventoryByCategory(ownerID string) ([]repository.InventoryDataPoint, error) {
	return nil, nil
}

func (r *fakeReportRepo) TopSellingProducts(ownerID string, limit int) ([]repository.TopSellingProductDataPoint, error) {
	return nil, nil
}

func (r *fakeReportRepo) CustomerGrowthByPeriod(ownerID, dateFormat string) ([]repository.CustomerGrowthDataPoint, error) {
	return nil, nil
}

func (r *fakeReportRepo) SaleTotalsByPeriod(ownerID, dateFormat string) ([]repository.PeriodTotals, error) {
	return r.saleTotals, nil
}

func (r *fakeReportRepo) SalesAmountBuckets(ownerID string) ([]repository.AmountBucket, error) {
	return r.buckets, nil
}

func (r *fakeReportRepo) ProductSales(ownerID string) ([]repository.ProductSalesRow, error) {
	return r.productSales, nil
}

func (r *fakeReportRepo) DashboardStats(ownerID string) (*repository.DashboardStats, error) {
	return &repository.DashboardStats{}, nil
}

func paretoRow(name string, amount float64) repository.ProductSalesRow {
	return repository.ProductSalesRow{
		ProductID:        uuid.New(),
		ProductName:      name,
		TotalSalesAmount: amount,
	}
}

func TestParseReportPeriod(t *testing.T) {
	assert.Equal(t, PeriodDaily, ParseReportPeriod("daily"))
	assert.Equal(t, PeriodMonthly, ParseReportPeriod("monthly"))
	assert.Equal(t, PeriodMonthly, ParseReportPeriod("weekly"))
	assert.Equal(t, PeriodMonthly, ParseReportPeriod(""))
}

func TestBuildParetoCumulativePercentage(t *testing.T) {
	rows := []repository.ProductSalesRow{
		paretoRow("A", 500),
		paretoRow("B", 300),
		paretoRow("C", 200),
	}

	data := buildPareto(rows, 7)
	require.Len(t, data, 3)

	assert.Equal(t, 50.0, data[0].CumulativePercentage)
	assert.Equal(t, 80.0, data[1].CumulativePercentage)
	assert.Equal(t, 100.0, data[2].CumulativePercentage)

	for i := 1; i < len(data); i++ {
		assert.GreaterOrEqual(t, data[i].CumulativePercentage, data[i-1].CumulativePercentage)
	}
}

func TestBuildParetoTruncatesAfterComputingOverFullSet(t *testing.T) {
	rows := []repository.ProductSalesRow{
		paretoRow("A", 600),
		paretoRow("B", 300),
		paretoRow("C", 100),
	}

	data := buildPareto(rows, 2)
	require.Len(t, data, 2)

	// Percentages are shares of the FULL total, so the visible tail stays <100
	assert.Equal(t, 60.0, data[0].CumulativePercentage)
	assert.Equal(t, 90.0, data[1].CumulativePercentage)
}

func TestBuildParetoRoundsToOneDecimal(t *testing.T) {
	rows := []repository.ProductSalesRow{
		paretoRow("A", 1),
		paretoRow("B", 1),
		paretoRow("C", 1),
	}

	data := buildPareto(rows, 7)
	require.Len(t, data, 3)
	assert.Equal(t, 33.3, data[0].CumulativePercentage)
	assert.Equal(t, 66.7, data[1].CumulativePercentage)
	assert.Equal(t, 100.0, data[2].CumulativePercentage)
}

func TestBuildParetoZeroTotal(t *testing.T) {
	rows := []repository.ProductSalesRow{
		paretoRow("A", 0),
		paretoRow("B", 0),
	}

	data := buildPareto(rows, 7)
	require.Len(t, data, 2)
	assert.Equal(t, 0.0, data[0].CumulativePercentage)
	assert.Equal(t, 0.0, data[1].CumulativePercentage)
}

func TestBuildParetoEmpty(t *testing.T) {
	data := buildPareto(nil, 7)
	assert.Empty(t, data)
	assert.NotNil(t, data, "serializes as [] not null")
}

func TestBuildAverageOrderValue(t *testing.T) {
	rows := []repository.PeriodTotals{
		{TimePeriod: "2026-01", TotalAmount: 100, SaleCount: 3},
		{TimePeriod: "2026-02", TotalAmount: 0, SaleCount: 0},
		{TimePeriod: "2026-03", TotalAmount: 250, SaleCount: 2},
	}

	data := buildAverageOrderValue(rows)
	require.Len(t, data, 3)

	assert.Equal(t, 33.33, data[0].AOV)
	assert.Equal(t, 0.0, data[1].AOV, "empty bucket yields 0, not NaN")
	assert.Equal(t, 125.0, data[2].AOV)
}

func TestBucketLabels(t *testing.T) {
	assert.Equal(t, "Rs. 0-50", bucketLabel(0))
	assert.Equal(t, "Rs. 51-100", bucketLabel(51))
	assert.Equal(t, "Rs. 101-200", bucketLabel(101))
	assert.Equal(t, "Rs. 201-500", bucketLabel(201))
	assert.Equal(t, "Rs. 501-1000", bucketLabel(501))
	assert.Equal(t, "Rs. 1001+", bucketLabel(1001))
}

func TestBuildDistribution(t *testing.T) {
	rows := []repository.AmountBucket{
		{Bucket: 0, TransactionCount: 4},
		{Bucket: 501, TransactionCount: 1},
	}

	data := buildDistribution(rows)
	require.Len(t, data, 2)
	assert.Equal(t, "Rs. 0-50", data[0].SalesRange)
	assert.Equal(t, 4, data[0].TransactionCount)
	assert.Equal(t, "Rs. 501-1000", data[1].SalesRange)
	assert.Equal(t, 1, data[1].TransactionCount)
}

func TestReportServiceEndToEndWithoutCache(t *testing.T) {
	repo := &fakeReportRepo{
		saleTotals: []repository.PeriodTotals{
			{TimePeriod: "2026-05", TotalAmount: 300, SaleCount: 4},
		},
		productSales: []repository.ProductSalesRow{
			paretoRow("Best", 900),
			paretoRow("Rest", 100),
		},
		salesByP: []repository.SalesDataPoint{
			{TimePeriod: "2026-05", Sales: 300},
		},
	}
	svc := NewReportService(repo, nil) // nil cache disables caching

	aov, err := svc.AverageOrderValueByPeriod(testOwner, PeriodMonthly)
	require.NoError(t, err)
	require.Len(t, aov, 1)
	assert.Equal(t, 75.0, aov[0].AOV)

	pareto, err := svc.ProductSalesPareto(testOwner, 0) // falls back to default limit
	require.NoError(t, err)
	require.Len(t, pareto, 2)
	assert.Equal(t, 90.0, pareto[0].CumulativePercentage)

	pl, err := svc.ProfitLossByPeriod(testOwner, PeriodMonthly)
	require.NoError(t, err)
	require.Len(t, pl, 1)
	assert.Equal(t, 300.0, pl[0].Profit)
	assert.Equal(t, 0.0, pl[0].Loss)
}
