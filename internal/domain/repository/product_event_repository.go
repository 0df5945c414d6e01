package repository

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// ProductEventRepository define el puerto para el registro de cambios de
// productos. Recent es una de las tres fuentes del feed de actividad.
type ProductEventRepository interface {
	Create(ctx context.Context, event *entity.ProductEvent) error
	// Recent devuelve hasta limit eventos de la empresa, ordenados
	// descendentemente por occurred_at.
	Recent(ctx context.Context, companyID string, limit int) ([]*entity.ProductEvent, error)
}
