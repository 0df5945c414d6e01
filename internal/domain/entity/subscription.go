package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planes de suscripción.
const (
	PlanBasico   = "basico"
	PlanPro      = "pro"
	PlanIlimited = "ilimitado"
)

// Estados de una suscripción según la pasarela.
const (
	SubPending  = "pending"
	SubActive   = "active"
	SubFailed   = "failed"
	SubExpired  = "expired"
	SubCanceled = "canceled"
)

// Subscription representa el estado de suscripción de una empresa al
// servicio. OrderID es el identificador enviado a la pasarela; el webhook lo
// usa para reconciliar el estado del pago.
type Subscription struct {
	ID          string
	CompanyID   string
	Plan        string
	Status      string
	OrderID     string // único, referencia en la pasarela
	GrossAmount decimal.Decimal
	PaidUntil   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlanPrice devuelve el precio mensual del plan, o cero si no existe.
func PlanPrice(plan string) decimal.Decimal {
	switch plan {
	case PlanBasico:
		return decimal.NewFromInt(49900)
	case PlanPro:
		return decimal.NewFromInt(99900)
	case PlanIlimited:
		return decimal.NewFromInt(179900)
	default:
		return decimal.Zero
	}
}
