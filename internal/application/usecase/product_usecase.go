package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
	"github.com/jortizc/CajaPro-api/pkg/logger"
)

// Actor identifica al usuario autenticado que ejecuta una operación, usado
// para registrar eventos de producto con nombre y condición de empleado.
type Actor struct {
	ID         string
	Name       string
	IsEmployee bool
}

// ProductUseCase gestiona el catálogo de productos. Cada alta, edición o
// ajuste de stock deja un ProductEvent, que alimenta el feed de actividad.
type ProductUseCase struct {
	repo          repository.ProductRepository
	eventRepo     repository.ProductEventRepository
	notifications *NotificationUseCase
	log           *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos. notifications
// puede ser nil en tests; solo se usa para avisar stock bajo.
func NewProductUseCase(repo repository.ProductRepository, eventRepo repository.ProductEventRepository, notifications *NotificationUseCase, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, eventRepo: eventRepo, notifications: notifications, log: log}
}

// Create da de alta un producto. El SKU es único por empresa.
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, _ := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.recordEvent(ctx, actor, product, entity.ProductCreated,
		fmt.Sprintf("Producto '%s' agregado al catálogo", product.Name))
	return entityToProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa. Retorna (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, nil
	}
	return entityToProductResponse(product), nil
}

// List lista el catálogo de la empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	products, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *entityToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita los campos del producto presentes en la solicitud. El stock
// no se edita por aquí: solo ventas, compras y AdjustStock lo mueven.
func (uc *ProductUseCase) Update(ctx context.Context, actor Actor, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.recordEvent(ctx, actor, product, entity.ProductUpdated,
		fmt.Sprintf("Producto '%s' actualizado", product.Name))
	return entityToProductResponse(product), nil
}

// AdjustStock aplica un ajuste manual de stock (merma, conteo físico).
func (uc *ProductUseCase) AdjustStock(ctx context.Context, actor Actor, companyID, id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.AdjustStock(ctx, id, in.Delta); err != nil {
		return nil, err
	}
	product.Stock += in.Delta
	product.UpdatedAt = time.Now()

	desc := fmt.Sprintf("Stock de '%s' ajustado en %+d", product.Name, in.Delta)
	if in.Reason != "" {
		desc += " (" + in.Reason + ")"
	}
	uc.recordEvent(ctx, actor, product, entity.ProductStockAdjusted, desc)

	// Aviso de stock bajo solo al cruzar el umbral hacia abajo.
	if in.Delta < 0 && product.Stock <= product.MinStock && uc.notifications != nil {
		if err := uc.notifications.Notify(ctx, product.CompanyID, "warning",
			"Stock bajo",
			fmt.Sprintf("'%s' quedó con %d unidades (mínimo %d)", product.Name, product.Stock, product.MinStock),
		); err != nil && uc.log != nil {
			uc.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo crear la notificación de stock bajo")
		}
	}
	return entityToProductResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || product.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// recordEvent registra el cambio para el feed. Un fallo aquí no debe tumbar
// la operación principal: se loguea y se continúa.
func (uc *ProductUseCase) recordEvent(ctx context.Context, actor Actor, product *entity.Product, action, description string) {
	event := &entity.ProductEvent{
		ID:              uuid.New().String(),
		CompanyID:       product.CompanyID,
		ProductID:       product.ID,
		Action:          action,
		Description:     description,
		ActorID:         actor.ID,
		ActorName:       actor.Name,
		ActorIsEmployee: actor.IsEmployee,
		OccurredAt:      time.Now(),
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil && uc.log != nil {
		uc.log.Error().Err(err).Str("product_id", product.ID).Msg("no se pudo registrar el evento de producto")
	}
}

func entityToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.Stock <= p.MinStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
