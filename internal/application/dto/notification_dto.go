package dto

import "time"

// NotificationResponse notificación persistida. TimeDisplay es un texto
// relativo ("3 minutes ago") derivado de CreatedAt, solo para presentación.
type NotificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // info, warning, success, error
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	TimeDisplay string    `json:"time_display"`
}

// NotificationListResponse listado con el contador de no leídas.
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
	Page        PageResponse           `json:"page"`
}
