package create_appointment

import (
	"context"
	"time"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetByTenantWithFilter внутри транзакции на конкретную дату выполняет
	// SELECT ... FOR UPDATE - это основа write-time защиты от double-booking
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context, tenantID int64) (*domain.WeekSchedule, error)
	ListTimeOff(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.TimeOffWindow, error)
}

// TenantServiceClient интерфейс клиента каталога тенантов
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*tenantservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
