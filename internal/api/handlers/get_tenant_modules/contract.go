package get_tenant_modules

import (
	"context"

	"github.com/slotline/availability-service/internal/service/modules/models"
)

type ModuleService interface {
	ListModules(ctx context.Context, req *models.ListModulesRequest) (*models.ModuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
