package entity

import (
	"time"

	"github.com/jortizc/CajaPro-api/internal/domain/authz"
)

// Estados válidos de una cuenta.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa una cuenta del sistema: el propietario de la empresa o un
// empleado (admin o cajero) que actúa en nombre de ella. Cada usuario tiene
// exactamente un rol a la vez; el cambio de rol es una mutación explícita
// protegida por el resolutor de autorización.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt, nunca en texto plano después de persistir
	Name         string
	Role         authz.Role
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsEmployee indica si la cuenta pertenece a un empleado (no al propietario).
func (u *User) IsEmployee() bool {
	return authz.IsEmployee(u.Role)
}
