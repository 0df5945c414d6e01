package sales

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la venta y el descuento de
// stock se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptGenerator genera el recibo PDF de una venta.
type ReceiptGenerator interface {
	Generate(company *entity.Company, sale *entity.Sale, details []entity.SaleDetail, customerName string) ([]byte, error)
}
