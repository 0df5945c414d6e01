package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/analytics"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

const analyticsCompanyID = "11111111-1111-1111-1111-111111111111"

// fakeAnalyticsRepo responde con valores fijos para cualquier rango.
type fakeAnalyticsRepo struct {
	revenue  decimal.Decimal
	count    int64
	lowStock int64
	top      []repository.TopProductResult

	totalsErr error
	lowErr    error
}

var _ repository.AnalyticsRepository = (*fakeAnalyticsRepo)(nil)

func (f *fakeAnalyticsRepo) GetSalesTotals(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, int64, error) {
	if f.totalsErr != nil {
		return decimal.Zero, 0, f.totalsErr
	}
	return f.revenue, f.count, nil
}

func (f *fakeAnalyticsRepo) GetLowStockCount(_ context.Context, _ string) (int64, error) {
	return f.lowStock, f.lowErr
}

func (f *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, limit int) ([]repository.TopProductResult, error) {
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func TestDashboardSummary_AgregaLasCuatroMetricas(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		revenue:  decimal.NewFromInt(120000),
		count:    3,
		lowStock: 2,
		top: []repository.TopProductResult{
			{ProductID: "p1", SKU: "TEC-001", ProductName: "Teclado", QuantitySold: 12, TotalRevenue: decimal.NewFromInt(540000)},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), analyticsCompanyID)
	require.NoError(t, err)

	assert.True(t, out.TodaySales.Equal(decimal.NewFromInt(120000)))
	assert.EqualValues(t, 3, out.TodayCount)
	assert.True(t, out.MonthlySales.Equal(decimal.NewFromInt(120000)))
	assert.EqualValues(t, 2, out.LowStockCount)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "TEC-001", out.TopProducts[0].SKU)
	assert.NotEmpty(t, out.DateLabel)
}

func TestDashboardSummary_FallaSiUnaFuenteFalla(t *testing.T) {
	repo := &fakeAnalyticsRepo{lowErr: errors.New("conexión perdida")}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background(), analyticsCompanyID)
	assert.Error(t, err, "cualquier fuente caída tumba el resumen completo")
}

func TestSalesReport_TicketPromedio(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		revenue: decimal.NewFromInt(300000),
		count:   4,
	}
	uc := analytics.NewReportUseCase(repo)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	out, err := uc.GetSalesReport(context.Background(), analyticsCompanyID, start, end)
	require.NoError(t, err)

	assert.EqualValues(t, 4, out.SalesCount)
	assert.True(t, out.AverageTicket.Equal(decimal.NewFromInt(75000)),
		"ticket promedio = ingresos / número de ventas")
}

func TestSalesReport_RangoInvertido(t *testing.T) {
	uc := analytics.NewReportUseCase(&fakeAnalyticsRepo{})

	start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.GetSalesReport(context.Background(), analyticsCompanyID, start, end)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesReport_SinVentas_PromedioCero(t *testing.T) {
	uc := analytics.NewReportUseCase(&fakeAnalyticsRepo{})

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	out, err := uc.GetSalesReport(context.Background(), analyticsCompanyID, start, end)
	require.NoError(t, err)
	assert.True(t, out.AverageTicket.IsZero())
}
