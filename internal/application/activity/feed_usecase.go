// Package activity implementa el agregador del feed de actividad: reúne
// eventos recientes heterogéneos de la empresa (ventas, compras, cambios de
// producto), los normaliza a una sola forma, filtra, ordena y pagina.
package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

const defaultFeedLimit = 10

// FeedOptions opciones del feed. Estructura cerrada: solo estas opciones
// tienen efecto, no hay bolsa dinámica de filtros.
type FeedOptions struct {
	Limit        int        // tamaño de página, default 10
	Offset       int        // default 0
	Type         string     // sale | purchase | product | login | all (vacío = all)
	StartDate    *time.Time // conserva items con Timestamp >= StartDate
	EndDate      *time.Time // conserva items con Timestamp <= EndDate
	EmployeeOnly bool       // conserva solo actividad de empleados
}

// FeedUseCase agrega las tres fuentes del feed. Las fuentes devuelven filas
// ya ordenadas descendentemente por su timestamp autoritativo.
type FeedUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	eventRepo    repository.ProductEventRepository
	now          func() time.Time
}

// NewFeedUseCase construye el agregador.
func NewFeedUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	eventRepo repository.ProductEventRepository,
) *FeedUseCase {
	return &FeedUseCase{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

// GetFeed produce la página solicitada del feed unificado.
//
// Pasos:
//  1. Trae hasta limit+offset filas de cada fuente (margen de seguridad: si
//     una fuente domina la actividad reciente, una página no puede quedar
//     corta por haber traído solo `limit` de cada una).
//  2. Normaliza cada fila a dto.ActivityItem conservando el timestamp
//     autoritativo junto al texto relativo de presentación.
//  3. Concatena, filtra (tipo, fecha desde, fecha hasta, solo empleados).
//  4. Ordena descendente por timestamp con orden estable: a igual instante
//     se conserva el orden de concatenación (ventas, compras, productos).
//  5. TotalCount = tamaño del conjunto filtrado antes de paginar; la página
//     es el corte [offset, offset+limit).
//
// Si cualquier fuente falla, falla todo el feed: no se devuelven resultados
// parciales.
func (uc *FeedUseCase) GetFeed(ctx context.Context, companyID string, opts FeedOptions) (*dto.ActivityFeedResponse, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultFeedLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	fetch := opts.Limit + opts.Offset

	type salesResult struct {
		rows []repository.SaleEvent
		err  error
	}
	type purchasesResult struct {
		rows []repository.PurchaseEvent
		err  error
	}
	type eventsResult struct {
		rows []*entity.ProductEvent
		err  error
	}

	salesCh := make(chan salesResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	eventsCh := make(chan eventsResult, 1)

	go func() {
		rows, err := uc.saleRepo.RecentForFeed(ctx, companyID, fetch)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.purchaseRepo.RecentForFeed(ctx, companyID, fetch)
		purchasesCh <- purchasesResult{rows, err}
	}()
	go func() {
		rows, err := uc.eventRepo.Recent(ctx, companyID, fetch)
		eventsCh <- eventsResult{rows, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh
	events := <-eventsCh

	if sales.err != nil {
		return nil, fmt.Errorf("feed: ventas: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("feed: compras: %w", purchases.err)
	}
	if events.err != nil {
		return nil, fmt.Errorf("feed: eventos de producto: %w", events.err)
	}

	now := uc.now()
	items := make([]dto.ActivityItem, 0, len(sales.rows)+len(purchases.rows)+len(events.rows))
	for _, s := range sales.rows {
		items = append(items, dto.ActivityItem{
			ID:              s.SaleID,
			Type:            dto.ActivitySale,
			Description:     fmt.Sprintf("Venta #%d por $%s", s.Number, s.Total.StringFixed(2)),
			Timestamp:       s.OccurredAt,
			TimeDisplay:     relTime(s.OccurredAt, now),
			ActorName:       s.SellerName,
			ActorIsEmployee: s.SellerIsEmployee,
		})
	}
	for _, p := range purchases.rows {
		items = append(items, dto.ActivityItem{
			ID:              p.PurchaseID,
			Type:            dto.ActivityPurchase,
			Description:     fmt.Sprintf("Compra #%d a %s por $%s", p.Number, p.SupplierName, p.Total.StringFixed(2)),
			Timestamp:       p.OccurredAt,
			TimeDisplay:     relTime(p.OccurredAt, now),
			ActorName:       p.BuyerName,
			ActorIsEmployee: p.BuyerIsEmployee,
		})
	}
	for _, e := range events.rows {
		items = append(items, dto.ActivityItem{
			ID:              e.ID,
			Type:            dto.ActivityProduct,
			Description:     e.Description,
			Timestamp:       e.OccurredAt,
			TimeDisplay:     relTime(e.OccurredAt, now),
			ActorName:       e.ActorName,
			ActorIsEmployee: e.ActorIsEmployee,
		})
	}

	filtered := make([]dto.ActivityItem, 0, len(items))
	for _, it := range items {
		if !matchesFilters(it, opts) {
			continue
		}
		filtered = append(filtered, it)
	}

	// Orden estable: empates de timestamp conservan el orden de concatenación.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	total := len(filtered)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &dto.ActivityFeedResponse{
		Success:    true,
		Data:       filtered[start:end],
		TotalCount: total,
	}, nil
}

// matchesFilters aplica los filtros en orden: tipo, fecha desde, fecha
// hasta, solo empleados.
func matchesFilters(it dto.ActivityItem, opts FeedOptions) bool {
	if opts.Type != "" && opts.Type != dto.ActivityAll && it.Type != opts.Type {
		return false
	}
	if opts.StartDate != nil && it.Timestamp.Before(*opts.StartDate) {
		return false
	}
	if opts.EndDate != nil && it.Timestamp.After(*opts.EndDate) {
		return false
	}
	if opts.EmployeeOnly && !it.ActorIsEmployee {
		return false
	}
	return true
}

// relTime formatea el instante como texto relativo ("3 minutes ago").
// Solo presentación: la lógica usa siempre el timestamp autoritativo.
func relTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
