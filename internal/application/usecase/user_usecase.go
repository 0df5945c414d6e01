package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/authz"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

// UserUseCase gestiona las cuentas de empleados de una empresa y el cambio
// de rol protegido por el resolutor de autorización.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateEmployee crea un empleado (admin o cajero) en la empresa del actor.
// Solo un actor con rango admin o superior puede crear cuentas, y la regla
// de asignación de roles aplica igual que en ChangeUserRole: un admin no
// puede crear otro admin.
func (uc *UserUseCase) CreateEmployee(ctx context.Context, actorRole authz.Role, companyID string, in dto.CreateEmployeeRequest) (*dto.UserResponse, error) {
	newRole := authz.Role(in.Role)
	if err := authz.CanAssignRole(actorRole, authz.RoleCajero, newRole); err != nil {
		return nil, err
	}
	if existing, _ := uc.repo.GetByEmail(ctx, in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         newRole,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario de la empresa. Retorna (nil, nil) si no existe
// o pertenece a otra empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// List lista las cuentas de la empresa con paginación.
func (uc *UserUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// Update edita nombre y estado de un empleado.
func (uc *UserUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Status != "" {
		user.Status = in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// ChangeUserRole cambia el rol de un usuario. Mutación protegida:
//   - valida con authz.CanAssignRole contra el rol actual almacenado;
//   - una violación retorna domain.ErrForbidden y no escribe nada;
//   - impide dejar a la empresa sin propietarios;
//   - en éxito persiste con un único UPDATE de fila (atómico en la DB).
func (uc *UserUseCase) ChangeUserRole(ctx context.Context, actorRole authz.Role, companyID, targetID string, newRole authz.Role) (*dto.UserResponse, error) {
	target, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil || target.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if err := authz.CanAssignRole(actorRole, target.Role, newRole); err != nil {
		return nil, err
	}
	if target.Role == authz.RolePropietario && newRole != authz.RolePropietario {
		owners, err := uc.repo.CountByRole(ctx, companyID, authz.RolePropietario)
		if err != nil {
			return nil, err
		}
		if owners <= 1 {
			return nil, domain.ErrLastOwner
		}
	}
	if err := uc.repo.UpdateRole(ctx, targetID, newRole); err != nil {
		return nil, err
	}
	target.Role = newRole
	target.UpdatedAt = time.Now()
	return entityToUserResponse(target), nil
}

// Delete elimina una cuenta de empleado. No se permite eliminar propietarios.
func (uc *UserUseCase) Delete(ctx context.Context, companyID, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if user.Role == authz.RolePropietario {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		CompanyID:  u.CompanyID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Status:     u.Status,
		IsEmployee: u.IsEmployee(),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
