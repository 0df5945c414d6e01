package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

const reportTopProducts = 10

// ReportUseCase genera reportes de ventas sobre un rango de fechas
// arbitrario. Restringido a admin y propietario en la capa HTTP.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo}
}

// GetSalesReport agrega ingresos, número de ventas, ticket promedio y el
// top de productos del rango [start, end].
func (uc *ReportUseCase) GetSalesReport(ctx context.Context, companyID string, start, end time.Time) (*dto.SalesReportDTO, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	revenue, count, err := uc.analyticsRepo.GetSalesTotals(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: totales: %w", err)
	}
	top, err := uc.analyticsRepo.GetTopProducts(ctx, companyID, start, end, reportTopProducts)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: top productos: %w", err)
	}
	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(count)).Round(2)
	}
	out := &dto.SalesReportDTO{
		Start:         start,
		End:           end,
		TotalRevenue:  revenue.Round(2),
		SalesCount:    count,
		AverageTicket: avg,
		TopProducts:   make([]dto.TopProductDTO, 0, len(top)),
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			SKU:          p.SKU,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			TotalRevenue: p.TotalRevenue.Round(2),
		})
	}
	return out, nil
}
