// Package analytics contiene los casos de uso read-only del dashboard de la
// caja: KPIs de ventas, stock bajo y productos top.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas de ventas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesTotals(hoy)       → TodaySales + TodayCount
//  2. GetSalesTotals(mes)       → MonthlySales + MonthlyCount
//  3. GetLowStockCount          → LowStockCount
//  4. GetTopProducts(mes, 5)    → TopProducts
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type totalsResult struct {
		revenue decimal.Decimal
		count   int64
		err     error
	}
	type lowStockResult struct {
		count int64
		err   error
	}
	type topResult struct {
		products []repository.TopProductResult
		err      error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rev, count, err := uc.analyticsRepo.GetSalesTotals(ctx, companyID, todayStart, todayEnd)
		todayCh <- totalsResult{rev, count, err}
	}()
	go func() {
		rev, count, err := uc.analyticsRepo.GetSalesTotals(ctx, companyID, monthStart, monthEnd)
		monthCh <- totalsResult{rev, count, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.GetLowStockCount(ctx, companyID)
		lowCh <- lowStockResult{count, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.GetTopProducts(ctx, companyID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()

	today := <-todayCh
	month := <-monthCh
	low := <-lowCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: productos top: %w", top.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.products))
	for _, p := range top.products {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			SKU:          p.SKU,
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			TotalRevenue: p.TotalRevenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    today.revenue.Round(2),
		TodayCount:    today.count,
		MonthlySales:  month.revenue.Round(2),
		MonthlyCount:  month.count,
		LowStockCount: low.count,
		TopProducts:   topProducts,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
