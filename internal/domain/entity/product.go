package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la empresa. El stock se
// mueve solo a través de ventas y compras (dentro de transacción); MinStock
// define el umbral de alerta de stock bajo para el dashboard.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de compra
	Stock       int64
	MinStock    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
