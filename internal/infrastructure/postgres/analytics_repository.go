package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesTotals devuelve ingresos brutos y número de ventas del período.
func (r *AnalyticsRepo) GetSalesTotals(
	ctx context.Context,
	companyID string,
	start, end time.Time,
) (decimal.Decimal, int64, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), COUNT(*)
	FROM sales
	WHERE company_id = $1 AND date BETWEEN $2 AND $3`

	var revenue decimal.Decimal
	var count int64
	err := r.q.QueryRow(ctx, query, companyID, start, end).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesTotals: %w", err)
	}
	return revenue, count, nil
}

// GetLowStockCount cuenta productos con stock en o bajo su mínimo.
func (r *AnalyticsRepo) GetLowStockCount(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE company_id = $1 AND stock <= min_stock`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("analytics.GetLowStockCount: %w", err)
	}
	return count, nil
}

// GetTopProducts agrupa las líneas de venta del período por producto y
// devuelve los de mayor ingreso.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	limit int,
) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    d.product_id,
	    COALESCE(p.sku, '')      AS sku,
	    d.product_name,
	    SUM(d.quantity)          AS quantity_sold,
	    SUM(d.subtotal)          AS total_revenue
	FROM sales s
	JOIN sale_details d ON d.sale_id = s.id
	LEFT JOIN products p ON p.id = d.product_id
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	GROUP BY d.product_id, p.sku, d.product_name
	ORDER BY total_revenue DESC
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, companyID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(
			&row.ProductID,
			&row.SKU,
			&row.ProductName,
			&row.QuantitySold,
			&row.TotalRevenue,
		); err != nil {
			return nil, fmt.Errorf("analytics: scan top product: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
