package modules

import (
	"context"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// ModuleRepository интерфейс репозитория модулей тенанта
type ModuleRepository interface {
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.TenantModule, error)
	IsEnabled(ctx context.Context, tenantID int64, module domain.ModuleCode) (bool, error)
	Upsert(ctx context.Context, m *domain.TenantModule) (*domain.TenantModule, error)
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
