package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra de mercancía a un proveedor. Al registrarse
// incrementa el stock de los productos comprados dentro de la misma
// transacción.
type Purchase struct {
	ID         string
	CompanyID  string
	Number     int64 // consecutivo por empresa
	SupplierID string
	UserID     string // quien registró la compra
	Total      decimal.Decimal
	Date       time.Time
	CreatedAt  time.Time
}

// PurchaseDetail línea de una compra.
type PurchaseDetail struct {
	ID          string
	PurchaseID  string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitCost    decimal.Decimal
	Subtotal    decimal.Decimal
}
