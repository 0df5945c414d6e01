package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest inicia el pago de una suscripción.
type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=basico pro ilimitado"`
}

// CheckoutResponse datos del checkout Snap creado en la pasarela.
type CheckoutResponse struct {
	OrderID     string          `json:"order_id"`
	Token       string          `json:"token"`
	RedirectURL string          `json:"redirect_url"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

// SubscriptionResponse estado de suscripción de la empresa.
type SubscriptionResponse struct {
	ID          string          `json:"id"`
	Plan        string          `json:"plan"`
	Status      string          `json:"status"`
	OrderID     string          `json:"order_id"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	PaidUntil   *time.Time      `json:"paid_until,omitempty"`
}

// PaymentNotification payload del webhook de la pasarela (Midtrans). La
// firma es SHA-512(order_id + status_code + gross_amount + server_key).
type PaymentNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}
