package repository

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// TicketRepository define el puerto de persistencia para ServiceTicket (DIP).
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.ServiceTicket) error
	GetByID(ctx context.Context, id string) (*entity.ServiceTicket, error)
	Update(ctx context.Context, ticket *entity.ServiceTicket) error
	// ListByCompany filtra por estado si status no es vacío.
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.ServiceTicket, error)
}
