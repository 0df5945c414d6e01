package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ticket de servicio técnico.
const (
	TicketRecibido  = "recibido"
	TicketEnProceso = "en_proceso"
	TicketListo     = "listo"
	TicketEntregado = "entregado"
	TicketCancelado = "cancelado"
)

// ticketTransitions transiciones válidas del ciclo de vida. Entregado y
// cancelado son estados finales.
var ticketTransitions = map[string][]string{
	TicketRecibido:  {TicketEnProceso, TicketCancelado},
	TicketEnProceso: {TicketListo, TicketCancelado},
	TicketListo:     {TicketEntregado, TicketCancelado},
}

// ValidTicketTransition indica si el paso from → to está permitido.
func ValidTicketTransition(from, to string) bool {
	for _, next := range ticketTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ServiceTicket representa una orden de servicio técnico (reparación) sobre
// un artículo que el cliente dejó en el local.
type ServiceTicket struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Device        string // descripción del artículo recibido
	Issue         string // falla reportada
	Status        string
	EstimatedCost decimal.Decimal
	UserID        string // quien recibió el artículo
	ReceivedAt    time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
