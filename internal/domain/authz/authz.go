// Package authz implementa el resolutor de autorización: comparación de
// rangos de rol, chequeo de permisos por prefijo de ruta y las reglas de
// asignación de roles. Todas las funciones son puras; la única mutación
// (cambio de rol) vive en el caso de uso de usuarios, que valida aquí antes
// de persistir.
package authz

import (
	"strings"

	"github.com/jortizc/CajaPro-api/internal/domain"
)

// Role rol de un usuario dentro de su empresa. Orden total de privilegio:
// propietario > admin > cajero.
type Role string

// Roles válidos.
const (
	RolePropietario Role = "propietario" // dueño de la empresa (tenant)
	RoleAdmin       Role = "admin"       // empleado administrador
	RoleCajero      Role = "cajero"      // empleado de caja
)

// rank asigna el nivel de privilegio. Un rol desconocido tiene rango 0 y
// nunca satisface un requisito.
func rank(r Role) int {
	switch r {
	case RolePropietario:
		return 3
	case RoleAdmin:
		return 2
	case RoleCajero:
		return 1
	default:
		return 0
	}
}

// Valid indica si r es uno de los tres roles conocidos.
func Valid(r Role) bool { return rank(r) > 0 }

// IsEmployee indica si el rol corresponde a un empleado (no al propietario).
func IsEmployee(r Role) bool { return r == RoleAdmin || r == RoleCajero }

// HasRoleLevel retorna true si actor tiene el mismo o mayor privilegio que required.
func HasRoleLevel(actor, required Role) bool {
	return rank(actor) >= rank(required) && rank(actor) > 0
}

// PermissionRule asocia un prefijo de ruta con el rol mínimo requerido.
// La tabla es fija en tiempo de compilación; no es editable por usuarios.
type PermissionRule struct {
	PathPrefix  string
	MinimumRole Role
}

// publicPrefixes rutas bajo /api que no requieren sesión: login/registro y el
// webhook de la pasarela (la pasarela no porta un JWT nuestro).
var publicPrefixes = []string{
	"/api/auth/",
	"/api/billing/notifications",
}

// rules tabla de permisos por prefijo. Se evalúa por coincidencia de prefijo
// más específica (la más larga gana). Rutas sin regla son públicas.
var rules = []PermissionRule{
	{PathPrefix: "/api/", MinimumRole: RoleCajero},
	{PathPrefix: "/api/employees", MinimumRole: RoleAdmin},
	{PathPrefix: "/api/purchases", MinimumRole: RoleAdmin},
	{PathPrefix: "/api/suppliers", MinimumRole: RoleAdmin},
	{PathPrefix: "/api/reports", MinimumRole: RoleAdmin},
	{PathPrefix: "/api/billing/checkout", MinimumRole: RolePropietario},
	{PathPrefix: "/api/company/settings", MinimumRole: RolePropietario},
}

// HasPermission busca la regla de prefijo más específica para path y valida
// el rango del actor contra su rol mínimo. Sin regla aplicable, la ruta es
// pública y se permite: todo lo protegido cuelga de /api/, que siempre tiene
// una regla base.
func HasPermission(actor Role, path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	var best *PermissionRule
	for i := range rules {
		r := &rules[i]
		if !strings.HasPrefix(path, r.PathPrefix) {
			continue
		}
		if best == nil || len(r.PathPrefix) > len(best.PathPrefix) {
			best = r
		}
	}
	if best == nil {
		return true // fuera del espacio protegido
	}
	return HasRoleLevel(actor, best.MinimumRole)
}

// CanAssignRole valida un cambio de rol antes de persistirlo:
//   - el actor debe ser al menos admin;
//   - solo el propietario puede asignar propietario o admin;
//   - un admin solo puede asignar cajero, y solo a usuarios que no sean
//     propietario ni admin.
//
// Retorna domain.ErrForbidden si la operación no está permitida y
// domain.ErrInvalidInput si newRole no es un rol conocido.
func CanAssignRole(actor, targetCurrent, newRole Role) error {
	if !Valid(newRole) {
		return domain.ErrInvalidInput
	}
	if !HasRoleLevel(actor, RoleAdmin) {
		return domain.ErrForbidden
	}
	if actor == RolePropietario {
		return nil
	}
	// actor es admin: solo puede degradar/asignar cajero a no privilegiados
	if newRole != RoleCajero {
		return domain.ErrForbidden
	}
	if targetCurrent == RolePropietario || targetCurrent == RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
