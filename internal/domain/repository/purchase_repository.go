package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// PurchaseEvent fila cruda de compra para el feed de actividad.
type PurchaseEvent struct {
	PurchaseID      string
	Number          int64
	Total           decimal.Decimal
	SupplierName    string
	BuyerName       string
	BuyerIsEmployee bool
	OccurredAt      time.Time
}

// PurchaseRepository define el puerto de persistencia para Purchase (DIP).
type PurchaseRepository interface {
	// Create inserta la compra y sus líneas; debe ejecutarse dentro de una
	// transacción (TxRunner) junto con el incremento de stock.
	Create(ctx context.Context, purchase *entity.Purchase, details []entity.PurchaseDetail) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetDetails(ctx context.Context, purchaseID string) ([]entity.PurchaseDetail, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error)
	NextNumber(ctx context.Context, companyID string) (int64, error)
	// RecentForFeed devuelve hasta limit compras ordenadas descendentemente
	// por su fecha autoritativa, con datos del comprador y proveedor.
	RecentForFeed(ctx context.Context, companyID string, limit int) ([]PurchaseEvent, error)
}
