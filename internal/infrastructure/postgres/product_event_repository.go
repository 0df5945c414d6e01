package postgres

import (
	"context"
	"fmt"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.ProductEventRepository = (*ProductEventRepo)(nil)

// ProductEventRepo implementación del puerto ProductEventRepository sobre PostgreSQL.
// El nombre del actor y su condición de empleado se desnormalizan al insertar
// para que el feed no dependa de JOINs contra users.
type ProductEventRepo struct {
	q Querier
}

// NewProductEventRepository construye el adaptador para eventos de producto.
func NewProductEventRepository(q Querier) *ProductEventRepo {
	return &ProductEventRepo{q: q}
}

// Create persiste un evento de producto.
func (r *ProductEventRepo) Create(ctx context.Context, event *entity.ProductEvent) error {
	query := `
		INSERT INTO product_events (id, company_id, product_id, action, description, actor_id, actor_name, actor_is_employee, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.CompanyID, event.ProductID, event.Action, event.Description,
		event.ActorID, event.ActorName, event.ActorIsEmployee, event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert product event: %w", err)
	}
	return nil
}

// Recent devuelve hasta limit eventos de la empresa, más recientes primero.
func (r *ProductEventRepo) Recent(ctx context.Context, companyID string, limit int) ([]*entity.ProductEvent, error) {
	query := `
		SELECT id, company_id, product_id, action, description, actor_id, actor_name, actor_is_employee, occurred_at
		FROM product_events WHERE company_id = $1 ORDER BY occurred_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent product events: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductEvent
	for rows.Next() {
		var e entity.ProductEvent
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.ProductID, &e.Action, &e.Description,
			&e.ActorID, &e.ActorName, &e.ActorIsEmployee, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan product event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
