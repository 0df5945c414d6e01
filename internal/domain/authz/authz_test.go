package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/authz"
)

var allRoles = []authz.Role{authz.RolePropietario, authz.RoleAdmin, authz.RoleCajero}

// rango tabla auxiliar para los tests de propiedades.
func rango(r authz.Role) int {
	switch r {
	case authz.RolePropietario:
		return 3
	case authz.RoleAdmin:
		return 2
	case authz.RoleCajero:
		return 1
	}
	return 0
}

// HasRoleLevel(r1, r2) es true sii rango(r1) >= rango(r2), para las 9 combinaciones.
func TestHasRoleLevel_TablaCompleta(t *testing.T) {
	for _, actor := range allRoles {
		for _, required := range allRoles {
			esperado := rango(actor) >= rango(required)
			assert.Equal(t, esperado, authz.HasRoleLevel(actor, required),
				"actor=%s required=%s", actor, required)
		}
	}
}

// Un rol desconocido nunca satisface ningún requisito.
func TestHasRoleLevel_RolDesconocido(t *testing.T) {
	for _, required := range allRoles {
		assert.False(t, authz.HasRoleLevel(authz.Role("superusuario"), required))
	}
	assert.False(t, authz.HasRoleLevel("", authz.RoleCajero))
}

// HasPermission es monótona en el rango: si un rol puede, todo rol de rango
// superior también puede.
func TestHasPermission_Monotonia(t *testing.T) {
	paths := []string{
		"/api/products",
		"/api/employees",
		"/api/purchases/123",
		"/api/billing/checkout",
		"/api/company/settings",
		"/api/sales",
	}
	for _, path := range paths {
		for _, r := range allRoles {
			if !authz.HasPermission(r, path) {
				continue
			}
			for _, mayor := range allRoles {
				if rango(mayor) >= rango(r) {
					assert.True(t, authz.HasPermission(mayor, path),
						"rol %s (>= %s) debe poder acceder a %s", mayor, r, path)
				}
			}
		}
	}
}

func TestHasPermission_PrefijoMasEspecifico(t *testing.T) {
	// /api/ permite cajero, pero /api/employees exige admin: gana la regla más larga.
	assert.True(t, authz.HasPermission(authz.RoleCajero, "/api/products"))
	assert.False(t, authz.HasPermission(authz.RoleCajero, "/api/employees"))
	assert.True(t, authz.HasPermission(authz.RoleAdmin, "/api/employees"))

	// Solo el propietario contrata la suscripción.
	assert.False(t, authz.HasPermission(authz.RoleAdmin, "/api/billing/checkout"))
	assert.True(t, authz.HasPermission(authz.RolePropietario, "/api/billing/checkout"))
}

func TestHasPermission_RutasPublicas(t *testing.T) {
	// Fuera del espacio protegido no se exige rol.
	assert.True(t, authz.HasPermission("", "/health"))
	// Login y webhook de la pasarela son públicos aunque cuelguen de /api.
	assert.True(t, authz.HasPermission("", "/api/auth/login"))
	assert.True(t, authz.HasPermission("", "/api/billing/notifications"))
}

func TestCanAssignRole_PropietarioPuedeTodo(t *testing.T) {
	for _, actual := range allRoles {
		for _, nuevo := range allRoles {
			assert.NoError(t, authz.CanAssignRole(authz.RolePropietario, actual, nuevo),
				"propietario debe poder asignar %s a un %s", nuevo, actual)
		}
	}
}

func TestCanAssignRole_AdminNoEscala(t *testing.T) {
	// Un admin nunca asigna propietario ni admin.
	assert.ErrorIs(t, authz.CanAssignRole(authz.RoleAdmin, authz.RoleCajero, authz.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, authz.CanAssignRole(authz.RoleAdmin, authz.RoleCajero, authz.RolePropietario), domain.ErrForbidden)

	// Un admin no toca a un propietario ni a otro admin.
	assert.ErrorIs(t, authz.CanAssignRole(authz.RoleAdmin, authz.RolePropietario, authz.RoleCajero), domain.ErrForbidden)
	assert.ErrorIs(t, authz.CanAssignRole(authz.RoleAdmin, authz.RoleAdmin, authz.RoleCajero), domain.ErrForbidden)

	// Lo único permitido: asignar cajero a un cajero (re-confirmación).
	assert.NoError(t, authz.CanAssignRole(authz.RoleAdmin, authz.RoleCajero, authz.RoleCajero))
}

func TestCanAssignRole_CajeroNoAsigna(t *testing.T) {
	for _, actual := range allRoles {
		for _, nuevo := range allRoles {
			assert.ErrorIs(t, authz.CanAssignRole(authz.RoleCajero, actual, nuevo), domain.ErrForbidden)
		}
	}
}

func TestCanAssignRole_RolInvalido(t *testing.T) {
	assert.ErrorIs(t, authz.CanAssignRole(authz.RolePropietario, authz.RoleCajero, "gerente"), domain.ErrInvalidInput)
}
