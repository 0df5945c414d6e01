package repository

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification (DIP).
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByCompany devuelve notificaciones ordenadas descendentemente por
	// created_at; si onlyUnread es true, solo las no leídas.
	ListByCompany(ctx context.Context, companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, companyID string) (int, error)
	// MarkRead marca una notificación; companyID evita marcar registros de
	// otra empresa. Retorna domain.ErrNotFound si no existe.
	MarkRead(ctx context.Context, id, companyID string) error
	MarkAllRead(ctx context.Context, companyID string) error
}
