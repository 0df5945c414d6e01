package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTicketRequest entrada para abrir un ticket de servicio técnico.
type CreateTicketRequest struct {
	CustomerID    string          `json:"customer_id" validate:"required,uuid"`
	Device        string          `json:"device" validate:"required,min=1,max=300"`
	Issue         string          `json:"issue" validate:"required,min=1,max=1000"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// UpdateTicketStatusRequest transición de estado del ticket.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=en_proceso listo entregado cancelado"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	CustomerID    string          `json:"customer_id"`
	Device        string          `json:"device"`
	Issue         string          `json:"issue"`
	Status        string          `json:"status"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	UserID        string          `json:"user_id"`
	ReceivedAt    time.Time       `json:"received_at"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
}

// TicketListResponse listado paginado de tickets.
type TicketListResponse struct {
	Items []TicketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
