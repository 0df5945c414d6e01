package repository

import (
	"context"

	"github.com/jortizc/CajaPro-api/internal/domain/authz"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateRole cambia solo el rol del usuario en un único UPDATE de fila
	// (atómico en la DB; last-writer-wins, sin token de concurrencia).
	UpdateRole(ctx context.Context, id string, role authz.Role) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	CountByRole(ctx context.Context, companyID string, role authz.Role) (int, error)
	Delete(ctx context.Context, id string) error
}
