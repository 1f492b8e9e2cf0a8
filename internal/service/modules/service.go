package modules

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/availability-service/internal/domain"
	tenantClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
	"github.com/slotline/availability-service/internal/service/modules/models"
)

// Service сервис для работы с модулями тенанта
type Service struct {
	moduleRepo   ModuleRepository
	tenantClient TenantServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса модулей
func NewService(
	moduleRepo ModuleRepository,
	tenantClient TenantServiceClient,
	logger Logger,
) *Service {
	return &Service{
		moduleRepo:   moduleRepo,
		tenantClient: tenantClient,
		logger:       logger,
	}
}

// ListModules получает состояние всех модулей тенанта
// Доступно только владельцам тенанта
func (s *Service) ListModules(ctx context.Context, req *models.ListModulesRequest) (*models.ModuleListResponse, error) {
	s.logger.Info("ListModules: fetching modules for tenant=%d by user=%d", req.TenantID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	records, err := s.moduleRepo.ListByTenant(ctx, req.TenantID)
	if err != nil {
		s.logger.Error("ListModules: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListModules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListModules: successfully fetched modules for tenant=%d", req.TenantID)
	return models.FromDomainModules(req.TenantID, records), nil
}

// UpdateModules включает или выключает модули тенанта
// Доступно только владельцам тенанта
func (s *Service) UpdateModules(ctx context.Context, req *models.UpdateModulesRequest) (*models.ModuleListResponse, error) {
	s.logger.Info("UpdateModules: updating modules for tenant=%d by user=%d", req.TenantID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	if len(req.Modules) == 0 {
		return nil, fmt.Errorf("%w: modules list is empty", ErrInvalidInput)
	}

	// Валидируем коды до первой записи, чтобы не сохранить частичное обновление
	for _, m := range req.Modules {
		if !domain.ModuleCode(m.Code).IsValid() {
			s.logger.Warn("UpdateModules: unknown module code=%s for tenant=%d", m.Code, req.TenantID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidModule, m.Code)
		}
	}

	for _, m := range req.Modules {
		record := &domain.TenantModule{
			TenantID: req.TenantID,
			Module:   domain.ModuleCode(m.Code),
			Enabled:  m.Enabled,
		}
		if _, err := s.moduleRepo.Upsert(ctx, record); err != nil {
			s.logger.Error("UpdateModules: repository error for tenant=%d, module=%s: %v", req.TenantID, m.Code, err)
			return nil, fmt.Errorf("%w: UpdateModules - repository error: %v", ErrInternal, err)
		}
	}

	records, err := s.moduleRepo.ListByTenant(ctx, req.TenantID)
	if err != nil {
		s.logger.Error("UpdateModules: failed to reload modules for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateModules - failed to reload modules: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateModules: successfully updated modules for tenant=%d", req.TenantID)
	return models.FromDomainModules(req.TenantID, records), nil
}

// IsModuleEnabled проверяет, включен ли модуль у тенанта
// Используется middleware для гейтинга фичевых маршрутов
func (s *Service) IsModuleEnabled(ctx context.Context, tenantID int64, module domain.ModuleCode) (bool, error) {
	if !module.IsValid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidModule, module)
	}

	enabled, err := s.moduleRepo.IsEnabled(ctx, tenantID, module)
	if err != nil {
		s.logger.Error("IsModuleEnabled: repository error for tenant=%d, module=%s: %v", tenantID, module, err)
		return false, fmt.Errorf("%w: IsModuleEnabled - repository error: %v", ErrInternal, err)
	}

	return enabled, nil
}

// Вспомогательные методы

// checkOwnerAccess проверяет, что пользователь является владельцем тенанта
func (s *Service) checkOwnerAccess(ctx context.Context, tenantID int64, userID int64) error {
	tenant, err := s.tenantClient.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			s.logger.Warn("checkOwnerAccess: tenant id=%d not found", tenantID)
			return ErrTenantNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get tenant id=%d: %v", tenantID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get tenant: %v", ErrInternal, err)
	}

	if !tenant.IsOwner(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not an owner of tenant=%d", userID, tenantID)
		return ErrAccessDenied
	}

	return nil
}
