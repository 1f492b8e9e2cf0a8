package get_available_slots

import (
	"time"

	"github.com/slotline/availability-service/internal/domain"
	getAvailableSlots "github.com/slotline/availability-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	TenantID  int64           `json:"tenantId"`
	ServiceID int64           `json:"serviceId"`
	Timezone  string          `json:"timezone"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Label    string    `json:"label"` // "10:00"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
			Label:    slot.Label,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		TenantID:  resp.TenantID,
		ServiceID: resp.ServiceID,
		Timezone:  resp.Timezone,
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(tenantID, serviceID int64, dateStr string, stepMinutes int, blockPastSlots bool) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantID:       tenantID,
		ServiceID:      serviceID,
		Date:           date,
		StepMinutes:    stepMinutes,
		BlockPastSlots: blockPastSlots,
	}, nil
}
