package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y sus líneas. Debe llamarse dentro de una
// transacción (TxRunner) junto con el descuento de stock.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale, details []entity.SaleDetail) error {
	query := `
		INSERT INTO sales (id, company_id, number, customer_id, user_id, total, discount, payment_method, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CompanyID, sale.Number, sale.CustomerID, sale.UserID,
		sale.Total, sale.Discount, sale.PaymentMethod, sale.Date, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, d := range details {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_details (id, sale_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.SaleID, d.ProductID, d.ProductName, d.Quantity, d.UnitPrice, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, number, customer_id, user_id, total, discount, payment_method, date, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.Number, &s.CustomerID, &s.UserID,
		&s.Total, &s.Discount, &s.PaymentMethod, &s.Date, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetDetails obtiene las líneas de una venta.
func (r *SaleRepo) GetDetails(ctx context.Context, saleID string) ([]entity.SaleDetail, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_details WHERE sale_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale details: %w", err)
	}
	defer rows.Close()
	var list []entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListByCompany lista ventas por empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, company_id, number, customer_id, user_id, total, discount, payment_method, date, created_at
		FROM sales WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Number, &s.CustomerID, &s.UserID,
			&s.Total, &s.Discount, &s.PaymentMethod, &s.Date, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de venta de la empresa.
// Dentro de la transacción de creación el MAX + 1 es consistente.
func (r *SaleRepo) NextNumber(ctx context.Context, companyID string) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM sales WHERE company_id = $1`,
		companyID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return next, nil
}

// RecentForFeed devuelve las ventas más recientes con los datos del vendedor
// resueltos: el rol del usuario determina la condición de empleado.
func (r *SaleRepo) RecentForFeed(ctx context.Context, companyID string, limit int) ([]repository.SaleEvent, error) {
	query := `
		SELECT s.id, s.number, s.total, u.name, u.role <> 'propietario', s.date
		FROM sales s
		JOIN users u ON u.id = s.user_id
		WHERE s.company_id = $1
		ORDER BY s.date DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleEvent
	for rows.Next() {
		var e repository.SaleEvent
		if err := rows.Scan(&e.SaleID, &e.Number, &e.Total, &e.SellerName, &e.SellerIsEmployee, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan sale event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
