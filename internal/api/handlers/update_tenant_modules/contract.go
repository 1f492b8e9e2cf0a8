package update_tenant_modules

import (
	"context"

	"github.com/slotline/availability-service/internal/service/modules/models"
)

type ModuleService interface {
	UpdateModules(ctx context.Context, req *models.UpdateModulesRequest) (*models.ModuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
