package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash     = "efectivo"
	PaymentCard     = "tarjeta"
	PaymentTransfer = "transferencia"
)

// Sale representa una venta registrada en caja. Date es el instante
// autoritativo de la venta (el que ordena el feed de actividad y los
// reportes); CreatedAt es solo metadato de inserción.
type Sale struct {
	ID            string
	CompanyID     string
	Number        int64   // consecutivo por empresa
	CustomerID    *string // nil = venta de mostrador sin cliente
	UserID        string  // quien registró la venta
	Total         decimal.Decimal
	Discount      decimal.Decimal
	PaymentMethod string
	Date          time.Time
	CreatedAt     time.Time
}

// SaleDetail línea de una venta. ProductName se congela al momento de vender
// para que el histórico no cambie si el producto se renombra.
type SaleDetail struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
