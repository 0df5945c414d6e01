package dto

import "time"

// Tipos de item del feed de actividad (conjunto cerrado).
const (
	ActivitySale     = "sale"
	ActivityPurchase = "purchase"
	ActivityProduct  = "product"
	ActivityLogin    = "login"
	ActivityAll      = "all"
)

// ActivityItem proyección normalizada de un evento reciente de la empresa.
// Timestamp es el instante autoritativo (ordena y filtra); TimeDisplay es la
// representación relativa ("2 hours ago"), solo para mostrar. Se construye
// por request y nunca se persiste en esta forma.
type ActivityItem struct {
	ID              string    `json:"id"`   // único dentro de su tipo de fuente
	Type            string    `json:"type"` // sale, purchase, product, login
	Description     string    `json:"description"`
	Timestamp       time.Time `json:"timestamp"`
	TimeDisplay     string    `json:"time_display"`
	ActorName       string    `json:"actor_name"`
	ActorIsEmployee bool      `json:"actor_is_employee"`
}

// ActivityFeedResponse resultado del agregador: página de items + total
// filtrado previo a la paginación.
type ActivityFeedResponse struct {
	Success    bool           `json:"success"`
	Data       []ActivityItem `json:"data"`
	TotalCount int            `json:"total_count"`
	Error      string         `json:"error,omitempty"`
}
