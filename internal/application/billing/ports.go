// Package billing contiene los casos de uso de suscripción y pago vía la
// pasarela (checkout Snap y reconciliación por webhook).
package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// CheckoutSession sesión de pago creada en la pasarela.
type CheckoutSession struct {
	Token       string
	RedirectURL string
}

// PaymentGateway puerto hacia la pasarela de pagos (Midtrans Snap).
type PaymentGateway interface {
	// CreateCheckout crea una sesión de pago para el pedido indicado y
	// devuelve el token y la URL de redirección.
	CreateCheckout(ctx context.Context, orderID, companyName, plan string, grossAmount decimal.Decimal) (*CheckoutSession, error)
}
