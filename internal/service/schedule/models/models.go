package models

import (
	"time"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/pkg/types"
)

// Request модели

// BusinessDayInput рабочий день в запросе на обновление расписания
// Weekday нумеруется с понедельника: 0=Monday ... 6=Sunday
type BusinessDayInput struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
}

// BreakWindowInput перерыв в запросе на обновление расписания
type BreakWindowInput struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// UpdateScheduleRequest запрос на полную замену недельного расписания
type UpdateScheduleRequest struct {
	UserID   int64              `json:"userId"`
	TenantID int64              `json:"tenantId"`
	Days     []BusinessDayInput `json:"days"`
	Breaks   []BreakWindowInput `json:"breaks"`
}

// CreateTimeOffRequest запрос на создание окна отгула
type CreateTimeOffRequest struct {
	UserID   int64     `json:"userId"`
	TenantID int64     `json:"tenantId"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   *string   `json:"reason,omitempty"`
}

// ListTimeOffRequest запрос на получение окон отгулов за период
type ListTimeOffRequest struct {
	UserID   int64     `json:"userId"`
	TenantID int64     `json:"tenantId"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// DeleteTimeOffRequest запрос на удаление окна отгула
type DeleteTimeOffRequest struct {
	UserID    int64 `json:"userId"`
	TenantID  int64 `json:"tenantId"`
	TimeOffID int64 `json:"timeOffId"`
}

// Response модели

// BusinessDayResponse рабочий день в ответе
type BusinessDayResponse struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// BreakWindowResponse перерыв в ответе
type BreakWindowResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleResponse недельное расписание тенанта
type ScheduleResponse struct {
	TenantID int64                 `json:"tenantId"`
	Days     []BusinessDayResponse `json:"days"`
	Breaks   []BreakWindowResponse `json:"breaks"`
}

// TimeOffResponse окно отгула в ответе
type TimeOffResponse struct {
	ID       int64     `json:"id"`
	TenantID int64     `json:"tenantId"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   *string   `json:"reason,omitempty"`
}

// TimeOffListResponse список окон отгулов
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// Методы конвертации

// ToDomainBusinessDays конвертирует входные рабочие дни в domain модели
func (r *UpdateScheduleRequest) ToDomainBusinessDays() []domain.BusinessDay {
	days := make([]domain.BusinessDay, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, domain.BusinessDay{
			TenantID:  r.TenantID,
			Weekday:   domain.Weekday(d.Weekday),
			OpenTime:  types.TimeString(d.OpenTime),
			CloseTime: types.TimeString(d.CloseTime),
		})
	}
	return days
}

// ToDomainBreaks конвертирует входные перерывы в domain модели
func (r *UpdateScheduleRequest) ToDomainBreaks() []domain.BreakWindow {
	breaks := make([]domain.BreakWindow, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		breaks = append(breaks, domain.BreakWindow{
			TenantID:  r.TenantID,
			Weekday:   domain.Weekday(b.Weekday),
			StartTime: types.TimeString(b.StartTime),
			EndTime:   types.TimeString(b.EndTime),
		})
	}
	return breaks
}

// FromDomainSchedule конвертирует domain расписание в DTO
func FromDomainSchedule(s *domain.WeekSchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		TenantID: s.TenantID,
		Days:     make([]BusinessDayResponse, 0, len(s.Days)),
		Breaks:   make([]BreakWindowResponse, 0, len(s.Breaks)),
	}

	for _, d := range s.Days {
		resp.Days = append(resp.Days, BusinessDayResponse{
			Weekday:   int(d.Weekday),
			OpenTime:  d.OpenTime.String(),
			CloseTime: d.CloseTime.String(),
		})
	}

	for _, b := range s.Breaks {
		resp.Breaks = append(resp.Breaks, BreakWindowResponse{
			Weekday:   int(b.Weekday),
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		})
	}

	return resp
}

// FromDomainTimeOff конвертирует domain окно отгула в DTO
func FromDomainTimeOff(t *domain.TimeOffWindow) *TimeOffResponse {
	if t == nil {
		return nil
	}
	return &TimeOffResponse{
		ID:       t.ID,
		TenantID: t.TenantID,
		StartsAt: t.StartsAt,
		EndsAt:   t.EndsAt,
		Reason:   t.Reason,
	}
}

// FromDomainTimeOffList конвертирует список окон отгулов в DTO
func FromDomainTimeOffList(windows []*domain.TimeOffWindow) *TimeOffListResponse {
	resp := &TimeOffListResponse{
		TimeOff: make([]TimeOffResponse, 0, len(windows)),
	}
	for _, w := range windows {
		if t := FromDomainTimeOff(w); t != nil {
			resp.TimeOff = append(resp.TimeOff, *t)
		}
	}
	return resp
}
