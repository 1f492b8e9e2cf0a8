package update_schedule

import (
	"github.com/slotline/availability-service/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
// Weekday нумеруется с понедельника: 0=Monday ... 6=Sunday
type UpdateScheduleRequest struct {
	Days   []BusinessDayInput `json:"days"`
	Breaks []BreakWindowInput `json:"breaks"`
}

// BusinessDayInput рабочий день
type BusinessDayInput struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// BreakWindowInput перерыв
type BreakWindowInput struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID, tenantID int64) *models.UpdateScheduleRequest {
	req := &models.UpdateScheduleRequest{
		UserID:   userID,
		TenantID: tenantID,
		Days:     make([]models.BusinessDayInput, 0, len(r.Days)),
		Breaks:   make([]models.BreakWindowInput, 0, len(r.Breaks)),
	}

	for _, d := range r.Days {
		req.Days = append(req.Days, models.BusinessDayInput{
			Weekday:   d.Weekday,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
		})
	}

	for _, b := range r.Breaks {
		req.Breaks = append(req.Breaks, models.BreakWindowInput{
			Weekday:   b.Weekday,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}

	return req
}
