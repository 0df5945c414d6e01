package purchases

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

// PurchaseUseCase registra compras a proveedor de forma transaccional:
// consecutivo por empresa, líneas con nombre congelado, incremento de stock
// y actualización del costo de cada producto, con Commit/Rollback atómico.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
	}
}

// CreatePurchase registra una compra. Dentro de la transacción toma el
// siguiente consecutivo, incrementa el stock de cada producto con el costo
// de la línea y guarda la compra; cualquier fallo revierte todo.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SupplierID: in.SupplierID,
		UserID:     userID,
		Date:       now,
		CreatedAt:  now,
	}

	var details []entity.PurchaseDetail

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
	) error {
		number, err := purchaseRepo.NextNumber(ctx, companyID)
		if err != nil {
			return err
		}
		purchase.Number = number

		total := decimal.Zero
		details = make([]entity.PurchaseDetail, 0, len(in.Lines))
		for _, line := range in.Lines {
			if line.Quantity <= 0 || line.UnitCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			if err := productRepo.AdjustStock(ctx, product.ID, line.Quantity); err != nil {
				return err
			}
			// El costo del producto se actualiza al de la última compra.
			product.Cost = line.UnitCost
			product.UpdatedAt = now
			if err := productRepo.Update(ctx, product); err != nil {
				return err
			}
			subtotal := line.UnitCost.Mul(decimal.NewFromInt(line.Quantity))
			total = total.Add(subtotal)
			details = append(details, entity.PurchaseDetail{
				ID:          uuid.New().String(),
				PurchaseID:  purchase.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitCost:    line.UnitCost,
				Subtotal:    subtotal,
			})
		}

		purchase.Total = total
		return purchaseRepo.Create(ctx, purchase, details)
	})
	if err != nil {
		return nil, err
	}
	return purchaseToResponse(purchase, details), nil
}

// GetByID obtiene una compra con sus líneas. Retorna (nil, nil) si no existe.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.CompanyID != companyID {
		return nil, nil
	}
	details, err := uc.purchaseRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return purchaseToResponse(purchase, details), nil
}

// List lista las compras de la empresa (sin líneas) con paginación.
func (uc *PurchaseUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.PurchaseListResponse, error) {
	rows, err := uc.purchaseRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(rows))
	for _, p := range rows {
		items = append(items, *purchaseToResponse(p, nil))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func purchaseToResponse(p *entity.Purchase, details []entity.PurchaseDetail) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		Number:     p.Number,
		SupplierID: p.SupplierID,
		UserID:     p.UserID,
		Total:      p.Total,
		Date:       p.Date,
	}
	for _, d := range details {
		out.Lines = append(out.Lines, dto.PurchaseLineResponse{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Quantity,
			UnitCost:    d.UnitCost,
			Subtotal:    d.Subtotal,
		})
	}
	return out
}
