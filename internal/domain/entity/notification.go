package entity

import "time"

// Tipos de notificación.
const (
	NotifInfo    = "info"
	NotifWarning = "warning"
	NotifSuccess = "success"
	NotifError   = "error"
)

// Notification es un aviso persistido para la empresa (pago confirmado,
// stock bajo, etc.). A diferencia de los items del feed de actividad, las
// notificaciones tienen identidad propia y el flag Read es el único campo
// que muta después de creadas.
type Notification struct {
	ID        string
	CompanyID string
	Type      string // info, warning, success, error
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
