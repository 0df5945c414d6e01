package repository

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto de persistencia para Subscription (DIP).
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByOrderID(ctx context.Context, orderID string) (*entity.Subscription, error)
	GetCurrentByCompany(ctx context.Context, companyID string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
}
