package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// SaleEvent fila cruda de venta para el feed de actividad: la venta con el
// nombre del vendedor y su condición de empleado ya resueltos por JOIN.
type SaleEvent struct {
	SaleID           string
	Number           int64
	Total            decimal.Decimal
	SellerName       string
	SellerIsEmployee bool
	OccurredAt       time.Time
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	// Create inserta la venta y sus líneas; debe ejecutarse dentro de una
	// transacción (TxRunner) junto con el descuento de stock.
	Create(ctx context.Context, sale *entity.Sale, details []entity.SaleDetail) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetDetails(ctx context.Context, saleID string) ([]entity.SaleDetail, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
	NextNumber(ctx context.Context, companyID string) (int64, error)
	// RecentForFeed devuelve hasta limit ventas ordenadas descendentemente
	// por su fecha autoritativa, con datos del vendedor resueltos.
	RecentForFeed(ctx context.Context, companyID string, limit int) ([]SaleEvent, error)
}
