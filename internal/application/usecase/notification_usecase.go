package usecase

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// NotificationUseCase lista y marca notificaciones de la empresa.
type NotificationUseCase struct {
	repo repository.NotificationRepository

	// reloj inyectable para que los textos relativos sean verificables
	now func() time.Time
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, now: time.Now}
}

// List devuelve notificaciones de la empresa con su contador de no leídas.
// Con onlyUnread en true solo trae las pendientes.
func (uc *NotificationUseCase) List(ctx context.Context, companyID string, onlyUnread bool, limit, offset int) (*dto.NotificationListResponse, error) {
	rows, err := uc.repo.ListByCompany(ctx, companyID, onlyUnread, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ahora := uc.now()
	items := make([]dto.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		items = append(items, dto.NotificationResponse{
			ID:          n.ID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
			TimeDisplay: humanize.RelTime(n.CreatedAt, ahora, "ago", "from now"),
		})
	}
	return &dto.NotificationListResponse{
		Items:       items,
		UnreadCount: unread,
		Page:        dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UnreadCount devuelve solo el contador de no leídas (para el badge).
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, companyID string) (int, error) {
	return uc.repo.CountUnread(ctx, companyID)
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, companyID, id string) error {
	return uc.repo.MarkRead(ctx, id, companyID)
}

// MarkAllRead marca todas las notificaciones de la empresa como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, companyID string) error {
	return uc.repo.MarkAllRead(ctx, companyID)
}

// Notify persiste un aviso nuevo. Lo usan otros casos de uso (pagos, stock
// bajo); no está expuesto por HTTP.
func (uc *NotificationUseCase) Notify(ctx context.Context, companyID, tipo, title, message string) error {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      tipo,
		Title:     title,
		Message:   message,
		CreatedAt: uc.now(),
	}
	return uc.repo.Create(ctx, n)
}
