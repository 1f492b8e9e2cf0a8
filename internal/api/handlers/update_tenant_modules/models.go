package update_tenant_modules

import (
	"github.com/slotline/availability-service/internal/service/modules/models"
)

// UpdateModulesRequest HTTP request model
type UpdateModulesRequest struct {
	Modules []ModuleToggle `json:"modules"`
}

// ModuleToggle включение/выключение одного модуля
type ModuleToggle struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateModulesRequest) ToServiceRequest(userID, tenantID int64) *models.UpdateModulesRequest {
	req := &models.UpdateModulesRequest{
		UserID:   userID,
		TenantID: tenantID,
		Modules:  make([]models.ModuleToggle, 0, len(r.Modules)),
	}
	for _, m := range r.Modules {
		req.Modules = append(req.Modules, models.ModuleToggle{
			Code:    m.Code,
			Enabled: m.Enabled,
		})
	}
	return req
}
