package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto con mayor ingreso en el período.
type TopProductResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold int64
	TotalRevenue decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard (DIP).
type AnalyticsRepository interface {
	// GetSalesTotals devuelve ingresos brutos y número de ventas del período.
	GetSalesTotals(ctx context.Context, companyID string, start, end time.Time) (revenue decimal.Decimal, count int64, err error)
	// GetLowStockCount cuenta productos con stock <= min_stock.
	GetLowStockCount(ctx context.Context, companyID string) (int64, error)
	GetTopProducts(ctx context.Context, companyID string, start, end time.Time, limit int) ([]TopProductResult, error)
}
