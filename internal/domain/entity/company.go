package entity

import "time"

// Company representa la empresa dueña de los datos: es la unidad de
// aislamiento multi-tenant. Todos los registros del sistema cuelgan de una
// Company vía company_id; no existe visibilidad entre empresas.
type Company struct {
	ID        string
	Name      string
	NIT       string // identificación tributaria, única
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
