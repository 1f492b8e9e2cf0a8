package get_available_slots

import (
	"time"

	"github.com/slotline/availability-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID  int64     // ID тенанта
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Дата для получения слотов (компонент времени игнорируется)

	// StepMinutes шаг генерации кандидатов; 0 = равен длительности услуги
	StepMinutes int

	// BlockPastSlots отбрасывать ли слоты, начинающиеся в прошлом
	// true для публичной витрины бронирования, false для админки
	BlockPastSlots bool
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	TenantID  int64     // ID тенанта
	ServiceID int64     // ID услуги
	Timezone  string    // IANA таймзона, в которой вычислены слоты

	Slots []domain.SlotCandidate // Список доступных слотов в хронологическом порядке
}
