package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// SaleUseCase registra ventas de forma transaccional: consecutivo por
// empresa, líneas con nombre de producto congelado y descuento de stock,
// todo con Commit/Rollback atómico.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	receipts     ReceiptGenerator
}

// NewSaleUseCase construye el caso de uso de ventas.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	receipts ReceiptGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		receipts:     receipts,
	}
}

// CreateSale registra una venta. Dentro de la transacción toma el siguiente
// consecutivo, descuenta stock línea por línea y guarda la venta; si algún
// producto no alcanza el stock pedido, todo se revierte con
// domain.ErrInsufficientStock.
func (uc *SaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var customerID *string
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		customerID = &in.CustomerID
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    customerID,
		UserID:        userID,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
		Date:          now,
		CreatedAt:     now,
	}

	var details []entity.SaleDetail

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		number, err := saleRepo.NextNumber(ctx, companyID)
		if err != nil {
			return err
		}
		sale.Number = number

		total := decimal.Zero
		details = make([]entity.SaleDetail, 0, len(in.Lines))
		for _, line := range in.Lines {
			if line.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			if err := productRepo.AdjustStock(ctx, product.ID, -line.Quantity); err != nil {
				return err
			}
			subtotal := product.Price.Mul(decimal.NewFromInt(line.Quantity))
			total = total.Add(subtotal)
			details = append(details, entity.SaleDetail{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
			})
		}

		total = total.Sub(in.Discount)
		if total.IsNegative() {
			return domain.ErrInvalidInput
		}
		sale.Total = total
		return saleRepo.Create(ctx, sale, details)
	})
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale, details), nil
}

// GetByID obtiene una venta con sus líneas. Retorna (nil, nil) si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, nil
	}
	details, err := uc.saleRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale, details), nil
}

// List lista las ventas de la empresa (sin líneas) con paginación.
func (uc *SaleUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SaleListResponse, error) {
	rows, err := uc.saleRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, *saleToResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Receipt genera el recibo PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, companyID, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	details, err := uc.saleRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	customerName := "Cliente de mostrador"
	if sale.CustomerID != nil {
		if customer, err := uc.customerRepo.GetByID(ctx, *sale.CustomerID); err == nil && customer != nil {
			customerName = customer.Name
		}
	}
	return uc.receipts.Generate(company, sale, details, customerName)
}

func saleToResponse(s *entity.Sale, details []entity.SaleDetail) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		Number:        s.Number,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		Total:         s.Total,
		Discount:      s.Discount,
		PaymentMethod: s.PaymentMethod,
		Date:          s.Date,
	}
	for _, d := range details {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return out
}
