package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/authz"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
)

var _ repository.UserRepository = (*fakeUserRepo)(nil)

const (
	empresaID = "00000000-0000-0000-0000-00000000000a"
	cajeroID  = "00000000-0000-0000-0000-000000000001"
	duenoID   = "00000000-0000-0000-0000-000000000002"
)

// fakeUserRepo repositorio en memoria que registra las escrituras de rol.
type fakeUserRepo struct {
	users       map[string]*entity.User
	roleUpdates int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.CompanyID == companyID {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role authz.Role) error {
	f.roleUpdates++
	f.users[id].Role = role
	return nil
}

func (f *fakeUserRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, companyID string, role authz.Role) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.CompanyID == companyID && u.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func usuario(id string, role authz.Role) *entity.User {
	return &entity.User{
		ID:        id,
		CompanyID: empresaID,
		Email:     id + "@test.local",
		Name:      "Usuario " + id,
		Role:      role,
		Status:    entity.UserActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Un admin que intenta ascender a un cajero a admin debe fallar con acceso
// denegado y el rol almacenado debe quedar intacto, sin escritura alguna.
func TestChangeUserRole_AdminNoPuedeAscenderAAdmin(t *testing.T) {
	repo := newFakeUserRepo(usuario(cajeroID, authz.RoleCajero), usuario(duenoID, authz.RolePropietario))
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.ChangeUserRole(context.Background(), authz.RoleAdmin, empresaID, cajeroID, authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, out)

	guardado, _ := repo.GetByID(context.Background(), cajeroID)
	assert.Equal(t, authz.RoleCajero, guardado.Role, "el rol no debe cambiar tras un intento denegado")
	assert.Zero(t, repo.roleUpdates, "no debe llegar ninguna escritura al repositorio")
}

// El propietario puede asignar cualquiera de los tres roles y el cambio
// persiste.
func TestChangeUserRole_PropietarioAsignaCualquierRol(t *testing.T) {
	for _, nuevo := range []authz.Role{authz.RoleAdmin, authz.RoleCajero, authz.RolePropietario} {
		repo := newFakeUserRepo(usuario(cajeroID, authz.RoleCajero), usuario(duenoID, authz.RolePropietario))
		uc := usecase.NewUserUseCase(repo)

		out, err := uc.ChangeUserRole(context.Background(), authz.RolePropietario, empresaID, cajeroID, nuevo)
		require.NoError(t, err, "propietario debe poder asignar %s", nuevo)
		assert.Equal(t, string(nuevo), out.Role)

		guardado, _ := repo.GetByID(context.Background(), cajeroID)
		assert.Equal(t, nuevo, guardado.Role, "el cambio a %s debe persistir", nuevo)
	}
}

// Degradar al único propietario dejaría la empresa sin dueño: se rechaza.
func TestChangeUserRole_NoDejaEmpresaSinPropietario(t *testing.T) {
	repo := newFakeUserRepo(usuario(duenoID, authz.RolePropietario), usuario(cajeroID, authz.RoleCajero))
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.ChangeUserRole(context.Background(), authz.RolePropietario, empresaID, duenoID, authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrLastOwner)

	guardado, _ := repo.GetByID(context.Background(), duenoID)
	assert.Equal(t, authz.RolePropietario, guardado.Role)
}

// Usuario de otra empresa: invisible, ErrNotFound.
func TestChangeUserRole_OtraEmpresaNoVisible(t *testing.T) {
	otro := usuario("ajeno", authz.RoleCajero)
	otro.CompanyID = "otra-empresa"
	repo := newFakeUserRepo(otro)
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.ChangeUserRole(context.Background(), authz.RolePropietario, empresaID, "ajeno", authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un admin no puede crear otro admin, pero sí un cajero.
func TestCreateEmployee_ReglasDeRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.CreateEmployee(context.Background(), authz.RoleAdmin, empresaID, dtoEmpleado("admin"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.CreateEmployee(context.Background(), authz.RoleAdmin, empresaID, dtoEmpleado("cajero"))
	require.NoError(t, err)
	assert.Equal(t, "cajero", out.Role)
	assert.True(t, out.IsEmployee)
}

func dtoEmpleado(role string) dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Email:    role + "@test.local",
		Password: "secreto123",
		Name:     "Nuevo " + role,
		Role:     role,
	}
}
