package entity

import "time"

// Supplier representa un proveedor al que la empresa le compra mercancía.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	Document  string // NIT del proveedor, único por empresa si no está vacío
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
