// Package payment implementa el puerto de la pasarela de pagos sobre
// Midtrans Snap.
package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/application/billing"
	"github.com/jortizc/CajaPro-api/pkg/config"
)

var _ billing.PaymentGateway = (*MidtransClient)(nil)

// MidtransClient adaptador del puerto PaymentGateway sobre el cliente Snap.
type MidtransClient struct {
	client    snap.Client
	finishURL string
}

// NewMidtransClient construye el cliente con la configuración de la pasarela.
func NewMidtransClient(cfg config.PaymentConfig) *MidtransClient {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(cfg.ServerKey, env)
	return &MidtransClient{client: client, finishURL: cfg.FinishURL}
}

// CreateCheckout crea una transacción Snap y devuelve token y URL de pago.
// Midtrans trabaja con montos enteros; los precios de los planes no tienen
// centavos, así que el truncado es exacto.
func (c *MidtransClient) CreateCheckout(_ context.Context, orderID, companyName, plan string, grossAmount decimal.Decimal) (*billing.CheckoutSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount.IntPart(),
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    plan,
			Name:  fmt.Sprintf("Suscripción plan %s", plan),
			Price: grossAmount.IntPart(),
			Qty:   1,
		}},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: companyName,
		},
	}
	if c.finishURL != "" {
		req.Callbacks = &snap.Callbacks{Finish: c.finishURL}
	}

	resp, err := c.client.CreateTransaction(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans: crear transacción: %w", err)
	}
	return &billing.CheckoutSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}
