package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador de persistencia para suscripciones.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste una suscripción.
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, plan, status, order_id, gross_amount, paid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sub.ID, sub.CompanyID, sub.Plan, sub.Status, sub.OrderID, sub.GrossAmount,
		sub.PaidUntil, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByOrderID obtiene una suscripción por el order_id de la pasarela.
func (r *SubscriptionRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, plan, status, order_id, gross_amount, paid_until, created_at, updated_at
		FROM subscriptions WHERE order_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, orderID), "get subscription by order")
}

// GetCurrentByCompany obtiene la suscripción más reciente de la empresa.
func (r *SubscriptionRepo) GetCurrentByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	query := `
		SELECT id, company_id, plan, status, order_id, gross_amount, paid_until, created_at, updated_at
		FROM subscriptions WHERE company_id = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, companyID), "get current subscription")
}

func (r *SubscriptionRepo) scanOne(row pgx.Row, op string) (*entity.Subscription, error) {
	var s entity.Subscription
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Plan, &s.Status, &s.OrderID, &s.GrossAmount,
		&s.PaidUntil, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Update actualiza el estado y la vigencia de la suscripción.
func (r *SubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET status = $2, paid_until = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, sub.ID, sub.Status, sub.PaidUntil, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
