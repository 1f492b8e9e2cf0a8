package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/slotline/availability-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	TenantID  int64            // ID тенанта
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (компонент времени игнорируется)
	StartTime types.TimeString // Время начала, HH:MM

	// Контактные данные клиента с публичной формы бронирования
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Notes         *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	PublicID        uuid.UUID
	TenantID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	CustomerName    string
	CustomerEmail   *string
	CustomerPhone   *string
	Notes           *string
	CreatedAt       time.Time
}
