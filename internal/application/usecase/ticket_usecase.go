package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// TicketUseCase gestiona las órdenes de servicio técnico y su máquina de
// estados: recibido → en_proceso → listo → entregado, con cancelado como
// salida desde cualquier estado no final.
type TicketUseCase struct {
	repo         repository.TicketRepository
	customerRepo repository.CustomerRepository
}

// NewTicketUseCase construye el caso de uso de tickets.
func NewTicketUseCase(repo repository.TicketRepository, customerRepo repository.CustomerRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo, customerRepo: customerRepo}
}

// Create abre un ticket en estado recibido para un cliente existente.
func (uc *TicketUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	ticket := &entity.ServiceTicket{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		Device:        in.Device,
		Issue:         in.Issue,
		Status:        entity.TicketRecibido,
		EstimatedCost: in.EstimatedCost,
		UserID:        userID,
		ReceivedAt:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticketToResponse(ticket), nil
}

// GetByID obtiene un ticket de la empresa. Retorna (nil, nil) si no existe.
func (uc *TicketUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.CompanyID != companyID {
		return nil, nil
	}
	return ticketToResponse(ticket), nil
}

// List lista los tickets de la empresa, opcionalmente filtrados por estado.
func (uc *TicketUseCase) List(ctx context.Context, companyID, status string, limit, offset int) (*dto.TicketListResponse, error) {
	tickets, err := uc.repo.ListByCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, *ticketToResponse(t))
	}
	return &dto.TicketListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus aplica una transición de estado. Una transición inválida
// (saltarse un paso, mover un estado final) retorna domain.ErrInvalidInput
// y no escribe nada. Al pasar a entregado se sella DeliveredAt.
func (uc *TicketUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidTicketTransition(ticket.Status, in.Status) {
		return nil, domain.ErrInvalidInput
	}
	ticket.Status = in.Status
	now := time.Now()
	if in.Status == entity.TicketEntregado {
		ticket.DeliveredAt = &now
	}
	ticket.UpdatedAt = now
	if err := uc.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticketToResponse(ticket), nil
}

func ticketToResponse(t *entity.ServiceTicket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:            t.ID,
		CompanyID:     t.CompanyID,
		CustomerID:    t.CustomerID,
		Device:        t.Device,
		Issue:         t.Issue,
		Status:        t.Status,
		EstimatedCost: t.EstimatedCost,
		UserID:        t.UserID,
		ReceivedAt:    t.ReceivedAt,
		DeliveredAt:   t.DeliveredAt,
	}
}
