package get_available_slots

import (
	"context"
	"time"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetWeekSchedule получает недельное расписание тенанта (часы + перерывы)
	GetWeekSchedule(ctx context.Context, tenantID int64) (*domain.WeekSchedule, error)
	// ListTimeOff получает окна отгулов, пересекающиеся с периодом [from, to)
	ListTimeOff(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.TimeOffWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByTenantWithFilter получает записи тенанта на конкретную дату
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
}

// TenantServiceClient интерфейс клиента каталога тенантов
type TenantServiceClient interface {
	GetTenantWithGracefulDegradation(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*tenantservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
