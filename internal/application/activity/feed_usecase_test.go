package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes sobre los puertos de las tres fuentes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleSource struct {
	repository.SaleRepository
	rows []repository.SaleEvent
	err  error
}

func (f *fakeSaleSource) RecentForFeed(_ context.Context, _ string, limit int) ([]repository.SaleEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakePurchaseSource struct {
	repository.PurchaseRepository
	rows []repository.PurchaseEvent
	err  error
}

func (f *fakePurchaseSource) RecentForFeed(_ context.Context, _ string, limit int) ([]repository.PurchaseEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

type fakeEventSource struct {
	repository.ProductEventRepository
	rows []*entity.ProductEvent
	err  error
}

func (f *fakeEventSource) Recent(_ context.Context, _ string, limit int) ([]*entity.ProductEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

// escenarioBase: una venta a las 10:00 del propietario, una compra a las
// 11:00 de una empleada y un cambio de producto a las 09:00 del propietario.
func escenarioBase(t *testing.T) (*FeedUseCase, time.Time) {
	t.Helper()
	dia := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	ventas := &fakeSaleSource{rows: []repository.SaleEvent{
		{
			SaleID: "venta-1", Number: 41,
			Total:            decimal.NewFromInt(150000),
			SellerName:       "Carlos",
			SellerIsEmployee: false,
			OccurredAt:       dia.Add(10 * time.Hour),
		},
	}}
	compras := &fakePurchaseSource{rows: []repository.PurchaseEvent{
		{
			PurchaseID: "compra-1", Number: 7,
			Total:           decimal.NewFromInt(800000),
			SupplierName:    "Distribuidora Norte",
			BuyerName:       "María",
			BuyerIsEmployee: true,
			OccurredAt:      dia.Add(11 * time.Hour),
		},
	}}
	eventos := &fakeEventSource{rows: []*entity.ProductEvent{
		{
			ID: "evento-1", Action: entity.ProductUpdated,
			Description:     "Producto 'Teclado USB' actualizado",
			ActorName:       "Carlos",
			ActorIsEmployee: false,
			OccurredAt:      dia.Add(9 * time.Hour),
		},
	}}

	uc := NewFeedUseCase(ventas, compras, eventos)
	uc.now = func() time.Time { return dia.Add(12 * time.Hour) }
	return uc, dia
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Sin filtros: los 3 items ordenados [compra@11:00, venta@10:00, producto@09:00].
func TestGetFeed_OrdenDescendentePorTimestamp(t *testing.T) {
	uc, _ := escenarioBase(t)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, 3, out.TotalCount)
	require.Len(t, out.Data, 3)
	assert.Equal(t, dto.ActivityPurchase, out.Data[0].Type)
	assert.Equal(t, dto.ActivitySale, out.Data[1].Type)
	assert.Equal(t, dto.ActivityProduct, out.Data[2].Type)

	// Propiedad: ningún par adyacente con timestamp ascendente.
	for i := 0; i < len(out.Data)-1; i++ {
		assert.False(t, out.Data[i].Timestamp.Before(out.Data[i+1].Timestamp),
			"data[%d] no puede ser anterior a data[%d]", i, i+1)
	}
}

// Filtro employeeOnly: solo la compra de María, TotalCount=1.
func TestGetFeed_FiltroSoloEmpleados(t *testing.T) {
	uc, _ := escenarioBase(t)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, EmployeeOnly: true})
	require.NoError(t, err)

	assert.Equal(t, 1, out.TotalCount)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "María", out.Data[0].ActorName)
	assert.True(t, out.Data[0].ActorIsEmployee)
}

// Filtro por tipo: solo items de ese tipo.
func TestGetFeed_FiltroPorTipo(t *testing.T) {
	uc, _ := escenarioBase(t)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, Type: dto.ActivitySale})
	require.NoError(t, err)

	assert.Equal(t, 1, out.TotalCount)
	require.Len(t, out.Data, 1)
	assert.Equal(t, dto.ActivitySale, out.Data[0].Type)

	// "all" y vacío equivalen a no filtrar.
	todos, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, Type: dto.ActivityAll})
	require.NoError(t, err)
	assert.Equal(t, 3, todos.TotalCount)

	// login está en el conjunto cerrado, pero ninguna fuente produce ese tipo.
	logins, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, Type: dto.ActivityLogin})
	require.NoError(t, err)
	assert.Equal(t, 0, logins.TotalCount)
	assert.Empty(t, logins.Data)
}

// Filtros de fecha: [10:00, 10:30] deja solo la venta.
func TestGetFeed_FiltroPorRangoDeFechas(t *testing.T) {
	uc, dia := escenarioBase(t)
	desde := dia.Add(10 * time.Hour)
	hasta := dia.Add(10*time.Hour + 30*time.Minute)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{
		Limit: 10, StartDate: &desde, EndDate: &hasta,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.TotalCount)
	require.Len(t, out.Data, 1)
	assert.Equal(t, dto.ActivitySale, out.Data[0].Type)
}

// Offset en o más allá del total: data vacía sin error, TotalCount intacto.
func TestGetFeed_OffsetMasAllaDelTotal(t *testing.T) {
	uc, _ := escenarioBase(t)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalCount)
	assert.Empty(t, out.Data)

	out, err = uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalCount)
	assert.Empty(t, out.Data)
}

// Paginación: limit 2 → página 1 con 2 items, página 2 con el restante.
func TestGetFeed_Paginacion(t *testing.T) {
	uc, _ := escenarioBase(t)

	pagina1, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 3, pagina1.TotalCount)
	assert.Len(t, pagina1.Data, 2)

	pagina2, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, pagina2.TotalCount)
	require.Len(t, pagina2.Data, 1)
	assert.Equal(t, dto.ActivityProduct, pagina2.Data[0].Type)
}

// Empates de timestamp: orden estable según concatenación (ventas antes que
// compras, compras antes que eventos de producto).
func TestGetFeed_EmpatesConservanOrdenDeConcatenacion(t *testing.T) {
	instante := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

	ventas := &fakeSaleSource{rows: []repository.SaleEvent{
		{SaleID: "venta-1", Number: 1, Total: decimal.NewFromInt(1000), SellerName: "Carlos", OccurredAt: instante},
	}}
	compras := &fakePurchaseSource{rows: []repository.PurchaseEvent{
		{PurchaseID: "compra-1", Number: 1, Total: decimal.NewFromInt(2000), SupplierName: "Norte", BuyerName: "María", BuyerIsEmployee: true, OccurredAt: instante},
	}}
	eventos := &fakeEventSource{rows: []*entity.ProductEvent{
		{ID: "evento-1", Description: "Producto creado", ActorName: "Carlos", OccurredAt: instante},
	}}

	uc := NewFeedUseCase(ventas, compras, eventos)
	uc.now = func() time.Time { return instante.Add(time.Hour) }

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Data, 3)
	assert.Equal(t, dto.ActivitySale, out.Data[0].Type)
	assert.Equal(t, dto.ActivityPurchase, out.Data[1].Type)
	assert.Equal(t, dto.ActivityProduct, out.Data[2].Type)
}

// Si una fuente falla, todo el feed falla: sin resultados parciales.
func TestGetFeed_FuenteConErrorFallaTodo(t *testing.T) {
	uc, _ := escenarioBase(t)
	uc.purchaseRepo = &fakePurchaseSource{err: errors.New("timeout de la DB")}

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10})
	assert.Error(t, err)
	assert.Nil(t, out)
}

// TimeDisplay es solo presentación, derivado del timestamp autoritativo.
func TestGetFeed_TimeDisplayEsRelativo(t *testing.T) {
	uc, _ := escenarioBase(t)

	out, err := uc.GetFeed(context.Background(), "empresa-1", FeedOptions{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, out.Data)
	// La compra ocurrió 1 hora antes del "ahora" inyectado.
	assert.Equal(t, "1 hour ago", out.Data[0].TimeDisplay)
}
