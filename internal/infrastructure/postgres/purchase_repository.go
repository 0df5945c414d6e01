package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la compra y sus líneas. Debe llamarse dentro de una
// transacción (TxRunner) junto con el incremento de stock.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase, details []entity.PurchaseDetail) error {
	query := `
		INSERT INTO purchases (id, company_id, number, supplier_id, user_id, total, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.CompanyID, purchase.Number, purchase.SupplierID,
		purchase.UserID, purchase.Total, purchase.Date, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, d := range details {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_details (id, purchase_id, product_id, product_name, quantity, unit_cost, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.PurchaseID, d.ProductID, d.ProductName, d.Quantity, d.UnitCost, d.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `
		SELECT id, company_id, number, supplier_id, user_id, total, date, created_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.Number, &p.SupplierID, &p.UserID, &p.Total, &p.Date, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// GetDetails obtiene las líneas de una compra.
func (r *PurchaseRepo) GetDetails(ctx context.Context, purchaseID string) ([]entity.PurchaseDetail, error) {
	query := `
		SELECT id, purchase_id, product_id, product_name, quantity, unit_cost, subtotal
		FROM purchase_details WHERE purchase_id = $1 ORDER BY product_name ASC`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase details: %w", err)
	}
	defer rows.Close()
	var list []entity.PurchaseDetail
	for rows.Next() {
		var d entity.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitCost, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListByCompany lista compras por empresa, más recientes primero.
func (r *PurchaseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, company_id, number, supplier_id, user_id, total, date, created_at
		FROM purchases WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Number, &p.SupplierID, &p.UserID,
			&p.Total, &p.Date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// NextNumber devuelve el siguiente consecutivo de compra de la empresa.
func (r *PurchaseRepo) NextNumber(ctx context.Context, companyID string) (int64, error) {
	var next int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM purchases WHERE company_id = $1`,
		companyID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next purchase number: %w", err)
	}
	return next, nil
}

// RecentForFeed devuelve las compras más recientes con proveedor y comprador
// resueltos: el rol del usuario determina la condición de empleado.
func (r *PurchaseRepo) RecentForFeed(ctx context.Context, companyID string, limit int) ([]repository.PurchaseEvent, error) {
	query := `
		SELECT p.id, p.number, p.total, sp.name, u.name, u.role <> 'propietario', p.date
		FROM purchases p
		JOIN suppliers sp ON sp.id = p.supplier_id
		JOIN users u ON u.id = p.user_id
		WHERE p.company_id = $1
		ORDER BY p.date DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent purchases: %w", err)
	}
	defer rows.Close()
	var list []repository.PurchaseEvent
	for rows.Next() {
		var e repository.PurchaseEvent
		if err := rows.Scan(&e.PurchaseID, &e.Number, &e.Total, &e.SupplierName, &e.BuyerName, &e.BuyerIsEmployee, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan purchase event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
