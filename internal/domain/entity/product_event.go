package entity

import "time"

// Acciones registradas sobre productos.
const (
	ProductCreated       = "created"
	ProductUpdated       = "updated"
	ProductStockAdjusted = "stock_adjusted"
)

// ProductEvent registra un cambio sobre un producto (alta, edición, ajuste de
// stock) con el actor que lo ejecutó. Es la fuente "producto" del feed de
// actividad del dashboard.
type ProductEvent struct {
	ID              string
	CompanyID       string
	ProductID       string
	Action          string // created, updated, stock_adjusted
	Description     string // texto legible, ej: "Producto 'Teclado USB' actualizado"
	ActorID         string
	ActorName       string
	ActorIsEmployee bool
	OccurredAt      time.Time
}
