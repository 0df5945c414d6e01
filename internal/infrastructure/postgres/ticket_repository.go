package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo implementación del puerto TicketRepository sobre PostgreSQL.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador de persistencia para tickets de servicio.
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

// Create persiste un nuevo ticket.
func (r *TicketRepo) Create(ctx context.Context, ticket *entity.ServiceTicket) error {
	query := `
		INSERT INTO service_tickets (id, company_id, customer_id, device, issue, status, estimated_cost, user_id, received_at, delivered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.CompanyID, ticket.CustomerID, ticket.Device, ticket.Issue,
		ticket.Status, ticket.EstimatedCost, ticket.UserID, ticket.ReceivedAt, ticket.DeliveredAt,
		ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*entity.ServiceTicket, error) {
	query := `
		SELECT id, company_id, customer_id, device, issue, status, estimated_cost, user_id, received_at, delivered_at, created_at, updated_at
		FROM service_tickets WHERE id = $1`
	var t entity.ServiceTicket
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyID, &t.CustomerID, &t.Device, &t.Issue, &t.Status,
		&t.EstimatedCost, &t.UserID, &t.ReceivedAt, &t.DeliveredAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// Update actualiza estado y fechas del ticket.
func (r *TicketRepo) Update(ctx context.Context, ticket *entity.ServiceTicket) error {
	query := `
		UPDATE service_tickets SET status = $2, estimated_cost = $3, delivered_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		ticket.ID, ticket.Status, ticket.EstimatedCost, ticket.DeliveredAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// ListByCompany lista tickets por empresa, opcionalmente filtrados por estado.
func (r *TicketRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ServiceTicket, error) {
	query := `
		SELECT id, company_id, customer_id, device, issue, status, estimated_cost, user_id, received_at, delivered_at, created_at, updated_at
		FROM service_tickets
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY received_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceTicket
	for rows.Next() {
		var t entity.ServiceTicket
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.CustomerID, &t.Device, &t.Issue, &t.Status,
			&t.EstimatedCost, &t.UserID, &t.ReceivedAt, &t.DeliveredAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
