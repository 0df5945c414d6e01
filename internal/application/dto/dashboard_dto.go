package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, conteo de stock bajo y el Top-5 de
// productos por ingreso del mes.
type DashboardSummaryDTO struct {
	TodaySales   decimal.Decimal `json:"today_sales"`   // ingresos brutos de hoy
	TodayCount   int64           `json:"today_count"`   // número de ventas de hoy
	MonthlySales decimal.Decimal `json:"monthly_sales"` // ingresos brutos del mes
	MonthlyCount int64           `json:"monthly_count"` // número de ventas del mes

	LowStockCount int64 `json:"low_stock_count"` // productos con stock <= mínimo

	TopProducts []TopProductDTO `json:"top_products"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// SalesReportDTO reporte de ventas de un rango arbitrario de fechas.
type SalesReportDTO struct {
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SalesCount    int64           `json:"sales_count"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	TopProducts   []TopProductDTO `json:"top_products"`
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
