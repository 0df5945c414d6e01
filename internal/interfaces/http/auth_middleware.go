package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain/authz"
	pkgjwt "github.com/jortizc/CajaPro-api/pkg/jwt"
)

// Claves en Locals para los claims del token.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// AuthMiddleware valida el Bearer token y carga user_id, company_id y role
// en Locals para los handlers protegidos.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization requerido"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato esperado: Bearer <token>"})
		}
		userID, companyID, role, err := pkgjwt.Parse(secret, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCompanyID, companyID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole exige que el rol del token sea exactamente uno de los
// permitidos. Token sin claim de rol → 401; rol no permitido → 403.
func RequireRole(allowed ...authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// RequirePermission resuelve la autorización por prefijo de ruta contra la
// tabla fija de permisos. Se monta una sola vez sobre el grupo protegido;
// los prefijos más específicos (empleados, compras, proveedores, reportes,
// checkout, ajustes de empresa) elevan el rol mínimo.
func RequirePermission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !authz.HasPermission(role, c.Path()) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el user_id del token, o "" si no hay sesión.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserID).(string); ok {
		return v
	}
	return ""
}

// GetCompanyID devuelve el company_id del token, o "" si no hay sesión.
func GetCompanyID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalCompanyID).(string); ok {
		return v
	}
	return ""
}

// GetRole devuelve el rol del token, o "" si no hay sesión o el token no
// porta el claim.
func GetRole(c *fiber.Ctx) authz.Role {
	if v, ok := c.Locals(LocalRole).(string); ok {
		return authz.Role(v)
	}
	return ""
}
