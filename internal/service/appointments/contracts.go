package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
}

// TenantServiceClient интерфейс клиента каталога тенантов
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*tenantservice.Tenant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
