package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/slotline/availability-service/internal/domain"
	appointmentRepo "github.com/slotline/availability-service/internal/infra/storage/appointment"
	tenantClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
	"github.com/slotline/availability-service/internal/service/appointments/models"
)

// Service сервис для работы с записями на услуги
type Service struct {
	appointmentRepo AppointmentRepository
	tenantClient    TenantServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	tenantClient TenantServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		tenantClient:    tenantClient,
		logger:          logger,
	}
}

// GetByID получает запись по внутреннему ID
// Доступно только владельцам тенанта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа владельца тенанта
	if err := s.checkOwnerAccess(ctx, appt.TenantID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetByPublicID получает запись по публичному UUID
// Публичная операция - ссылку с UUID клиент получает при создании записи
func (s *Service) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByPublicID: fetching appointment public_id=%s", publicID)

	appt, err := s.appointmentRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByPublicID: appointment public_id=%s not found", publicID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByPublicID: repository error for public_id=%s: %v", publicID, err)
		return nil, fmt.Errorf("%w: GetByPublicID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByPublicID: successfully fetched appointment id=%d", appt.ID)
	return models.FromDomainAppointment(appt), nil
}

// GetTenantAppointments получает записи тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду, статусу и включению неактивных записей
// Доступно только владельцам тенанта
//
// Примеры использования:
// - Все активные записи: GetTenantAppointments(ctx, &GetTenantAppointmentsRequest{TenantID: 123, UserID: 456})
// - Записи по конкретной услуге: указать ServiceID
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetTenantAppointments(ctx context.Context, req *models.GetTenantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetTenantAppointments: fetching appointments for tenant=%d, user=%d", req.TenantID, req.UserID)
	if req.ServiceID != nil {
		logMsg += fmt.Sprintf(", service=%d", *req.ServiceID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantAppointments: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantAppointments: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantAppointments: successfully fetched %d appointments for tenant=%d", len(appointments), req.TenantID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись от имени владельца тенанта (cancelled_by_tenant)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, appt.TenantID, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
		return err
	}

	// Проверяем, можно ли отменить запись
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, domain.StatusCancelledByTenant, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// CancelByPublicID отменяет запись от имени клиента (cancelled_by_customer)
// Публичная операция - право на отмену дает знание UUID из ссылки
func (s *Service) CancelByPublicID(ctx context.Context, publicID uuid.UUID, reason string) error {
	s.logger.Info("CancelByPublicID: cancelling appointment public_id=%s", publicID)

	appt, err := s.appointmentRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("CancelByPublicID: appointment public_id=%s not found", publicID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("CancelByPublicID: repository error for public_id=%s: %v", publicID, err)
		return fmt.Errorf("%w: CancelByPublicID - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("CancelByPublicID: appointment id=%d cannot be cancelled, status=%s", appt.ID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID, domain.StatusCancelledByCustomer, reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("CancelByPublicID: repository error for appointment id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: CancelByPublicID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelByPublicID: successfully cancelled appointment id=%d", appt.ID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только владельцам тенанта
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа владельца
	if err := s.checkOwnerAccess(ctx, appt.TenantID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
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
