package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, productID string, delta int64) error {
	p, ok := f.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (f *fakeProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

type fakeEventRepo struct {
	events []*entity.ProductEvent
}

var _ repository.ProductEventRepository = (*fakeEventRepo)(nil)

func (f *fakeEventRepo) Create(_ context.Context, e *entity.ProductEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) Recent(_ context.Context, _ string, _ int) ([]*entity.ProductEvent, error) {
	return f.events, nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	cp := *n
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeNotificationRepo) ListByCompany(_ context.Context, companyID string, onlyUnread bool, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.created {
		if n.CompanyID != companyID {
			continue
		}
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, companyID string) (int, error) {
	count := 0
	for _, n := range f.created {
		if n.CompanyID == companyID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, companyID string) error {
	for _, n := range f.created {
		if n.ID == id && n.CompanyID == companyID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, companyID string) error {
	for _, n := range f.created {
		if n.CompanyID == companyID {
			n.Read = true
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

const productCompanyID = "11111111-1111-1111-1111-111111111111"

var testActor = usecase.Actor{ID: "u1", Name: "Laura", IsEmployee: true}

func newProductFixture(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo, *fakeEventRepo, *fakeNotificationRepo) {
	t.Helper()
	repo := newFakeProductRepo()
	events := &fakeEventRepo{}
	notifRepo := &fakeNotificationRepo{}
	notifications := usecase.NewNotificationUseCase(notifRepo)
	uc := usecase.NewProductUseCase(repo, events, notifications, nil)
	return uc, repo, events, notifRepo
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, sku string, stock, minStock int64) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), testActor, productCompanyID, dto.CreateProductRequest{
		SKU:      sku,
		Name:     "Teclado inalámbrico",
		Price:    decimal.NewFromInt(45000),
		Cost:     decimal.NewFromInt(30000),
		Stock:    stock,
		MinStock: minStock,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SKUDuplicadoEnLaEmpresa(t *testing.T) {
	uc, _, events, _ := newProductFixture(t)
	createProduct(t, uc, "TEC-001", 10, 3)

	_, err := uc.Create(context.Background(), testActor, productCompanyID, dto.CreateProductRequest{
		SKU:   "TEC-001",
		Name:  "Otro producto",
		Price: decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, events.events, 1, "solo el alta original debe dejar evento")
}

func TestCreateProduct_RegistraEventoConActor(t *testing.T) {
	uc, _, events, _ := newProductFixture(t)
	createProduct(t, uc, "TEC-001", 10, 3)

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, entity.ProductCreated, ev.Action)
	assert.Equal(t, "Laura", ev.ActorName)
	assert.True(t, ev.ActorIsEmployee)
	assert.Contains(t, ev.Description, "Teclado inalámbrico")
}

func TestAdjustStock_BajoElUmbral_CreaNotificacion(t *testing.T) {
	uc, _, _, notifRepo := newProductFixture(t)
	p := createProduct(t, uc, "TEC-001", 5, 3)

	out, err := uc.AdjustStock(context.Background(), testActor, productCompanyID, p.ID, dto.AdjustStockRequest{
		Delta:  -3,
		Reason: "merma",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Stock)
	assert.True(t, out.LowStock)

	require.Len(t, notifRepo.created, 1, "cruzar el mínimo debe dejar una notificación")
	n := notifRepo.created[0]
	assert.Equal(t, entity.NotifWarning, n.Type)
	assert.Equal(t, productCompanyID, n.CompanyID)
	assert.Contains(t, n.Message, "2 unidades")
}

func TestAdjustStock_PositivoSobreElUmbral_SinNotificacion(t *testing.T) {
	uc, _, _, notifRepo := newProductFixture(t)
	p := createProduct(t, uc, "TEC-001", 5, 3)

	_, err := uc.AdjustStock(context.Background(), testActor, productCompanyID, p.ID, dto.AdjustStockRequest{Delta: 10})
	require.NoError(t, err)
	assert.Empty(t, notifRepo.created)
}

func TestAdjustStock_StockInsuficiente(t *testing.T) {
	uc, repo, _, _ := newProductFixture(t)
	p := createProduct(t, uc, "TEC-001", 5, 3)

	_, err := uc.AdjustStock(context.Background(), testActor, productCompanyID, p.ID, dto.AdjustStockRequest{Delta: -8})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := repo.GetByID(context.Background(), p.ID)
	assert.EqualValues(t, 5, stored.Stock, "el stock no debe cambiar")
}

func TestUpdateProduct_OtraEmpresaNoVisible(t *testing.T) {
	uc, _, _, _ := newProductFixture(t)
	p := createProduct(t, uc, "TEC-001", 5, 3)

	nombre := "Nuevo nombre"
	_, err := uc.Update(context.Background(), testActor, "22222222-2222-2222-2222-222222222222", p.ID, dto.UpdateProductRequest{Name: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
