package schedule

import (
	"context"
	"time"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeekSchedule(ctx context.Context, tenantID int64) (*domain.WeekSchedule, error)
	ReplaceBusinessDays(ctx context.Context, tenantID int64, days []domain.BusinessDay) error
	ReplaceBreaks(ctx context.Context, tenantID int64, breaks []domain.BreakWindow) error
	CreateTimeOff(ctx context.Context, timeOff *domain.TimeOffWindow) (*domain.TimeOffWindow, error)
	ListTimeOff(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.TimeOffWindow, error)
	DeleteTimeOff(ctx context.Context, tenantID, id int64) error
}

// TenantServiceClient интерфейс клиента каталога тенантов
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
