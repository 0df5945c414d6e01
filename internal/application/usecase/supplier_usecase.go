package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// SupplierUseCase gestiona el directorio de proveedores de la empresa.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso de proveedores.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor. El documento, si viene, es único por empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if in.Document != "" {
		if existing, _ := uc.repo.GetByDocument(ctx, companyID, in.Document); existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierToContactResponse(supplier), nil
}

// GetByID obtiene un proveedor de la empresa. Retorna (nil, nil) si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ContactResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, nil
	}
	return supplierToContactResponse(supplier), nil
}

// List lista los proveedores de la empresa con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ContactListResponse, error) {
	suppliers, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(suppliers))
	for _, s := range suppliers {
		items = append(items, *supplierToContactResponse(s))
	}
	return &dto.ContactListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita los datos de contacto del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplierToContactResponse(supplier), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func supplierToContactResponse(s *entity.Supplier) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		Document:  s.Document,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
