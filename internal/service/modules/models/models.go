package models

import (
	"github.com/slotline/availability-service/internal/domain"
)

// Request модели

// ModuleToggle включение/выключение одного модуля
type ModuleToggle struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// UpdateModulesRequest запрос на изменение набора модулей тенанта
type UpdateModulesRequest struct {
	UserID   int64          `json:"userId"`
	TenantID int64          `json:"tenantId"`
	Modules  []ModuleToggle `json:"modules"`
}

// ListModulesRequest запрос на получение модулей тенанта
type ListModulesRequest struct {
	UserID   int64 `json:"userId"`
	TenantID int64 `json:"tenantId"`
}

// Response модели

// ModuleResponse состояние одного модуля
type ModuleResponse struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// ModuleListResponse состояние всех модулей тенанта
type ModuleListResponse struct {
	TenantID int64            `json:"tenantId"`
	Modules  []ModuleResponse `json:"modules"`
}

// Методы конвертации

// FromDomainModules собирает полный список модулей: для каждого известного
// кода берется флаг из записей тенанта, отсутствие записи значит выключен
func FromDomainModules(tenantID int64, records []*domain.TenantModule) *ModuleListResponse {
	enabled := make(map[domain.ModuleCode]bool, len(records))
	for _, r := range records {
		enabled[r.Module] = r.Enabled
	}

	resp := &ModuleListResponse{
		TenantID: tenantID,
		Modules:  make([]ModuleResponse, 0, len(domain.AllModules)),
	}
	for _, code := range domain.AllModules {
		resp.Modules = append(resp.Modules, ModuleResponse{
			Code:    string(code),
			Enabled: enabled[code],
		})
	}
	return resp
}
