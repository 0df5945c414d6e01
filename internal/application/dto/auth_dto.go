package dto

import "time"

// RegisterCompanyRequest alta de una empresa con su cuenta propietaria.
type RegisterCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	NIT         string `json:"nit" validate:"required,min=5,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	OwnerName   string `json:"owner_name" validate:"required,min=1,max=200"`
}

// LoginRequest entrada para login (propietario o empleado).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateEmployeeRequest alta de un empleado (admin o cajero) en la empresa
// del token. El password se hashea en el caso de uso.
type CreateEmployeeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin cajero"`
}

// UpdateEmployeeRequest edición de datos básicos (no rol, no password).
type UpdateEmployeeRequest struct {
	Name   string `json:"name" validate:"omitempty,min=1,max=200"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ChangeRoleRequest cambio explícito de rol, validado por el resolutor.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=propietario admin cajero"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	IsEmployee bool      `json:"is_employee"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RegisterCompanyResponse empresa creada + cuenta propietaria + token.
type RegisterCompanyResponse struct {
	CompanyID string       `json:"company_id"`
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
}
