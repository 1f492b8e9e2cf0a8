package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotline/availability-service/internal/domain"
	scheduleRepo "github.com/slotline/availability-service/internal/infra/storage/schedule"
	tenantClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
	"github.com/slotline/availability-service/internal/service/schedule/models"
	"github.com/slotline/availability-service/pkg/types"
)

// Service сервис для работы с расписанием тенанта
type Service struct {
	scheduleRepo ScheduleRepository
	tenantClient TenantServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	tenantClient TenantServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		tenantClient: tenantClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание тенанта
// Публичная операция - расписание отображается на странице бронирования
func (s *Service) GetSchedule(ctx context.Context, tenantID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for tenant=%d", tenantID)

	schedule, err := s.scheduleRepo.GetWeekSchedule(ctx, tenantID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched schedule for tenant=%d, days=%d, breaks=%d",
		tenantID, len(schedule.Days), len(schedule.Breaks))
	return models.FromDomainSchedule(schedule), nil
}

// UpdateSchedule полностью заменяет недельное расписание тенанта
// Рабочие дни и перерывы заменяются атомарно в одной транзакции
// Доступно только владельцам тенанта
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for tenant=%d by user=%d, days=%d, breaks=%d",
		req.TenantID, req.UserID, len(req.Days), len(req.Breaks))

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	days := req.ToDomainBusinessDays()
	breaks := req.ToDomainBreaks()

	if err := validateSchedule(days, breaks); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for tenant=%d: %v", req.TenantID, err)
		return nil, err
	}

	// Замена рабочих дней и перерывов атомарна
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.scheduleRepo.ReplaceBusinessDays(txCtx, req.TenantID, days); err != nil {
			return fmt.Errorf("replace business days: %w", err)
		}
		if err := s.scheduleRepo.ReplaceBreaks(txCtx, req.TenantID, breaks); err != nil {
			return fmt.Errorf("replace breaks: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: transaction failed for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - transaction failed: %v", ErrInternal, err)
	}

	schedule, err := s.scheduleRepo.GetWeekSchedule(ctx, req.TenantID)
	if err != nil {
		s.logger.Error("UpdateSchedule: failed to reload schedule for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - failed to reload schedule: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for tenant=%d", req.TenantID)
	return models.FromDomainSchedule(schedule), nil
}

// CreateTimeOff создает окно отгула (отпуск, праздничное закрытие)
// Доступно только владельцам тенанта
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: creating time off for tenant=%d by user=%d, %s - %s",
		req.TenantID, req.UserID, req.StartsAt, req.EndsAt)

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		s.logger.Warn("CreateTimeOff: missing bounds for tenant=%d", req.TenantID)
		return nil, fmt.Errorf("%w: startsAt and endsAt are required", ErrInvalidInput)
	}

	if !req.StartsAt.Before(req.EndsAt) {
		s.logger.Warn("CreateTimeOff: inverted window for tenant=%d", req.TenantID)
		return nil, fmt.Errorf("%w: startsAt must be before endsAt", ErrInvalidTimeRange)
	}

	timeOff := &domain.TimeOffWindow{
		TenantID: req.TenantID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Reason:   req.Reason,
	}

	created, err := s.scheduleRepo.CreateTimeOff(ctx, timeOff)
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: successfully created time off id=%d for tenant=%d", created.ID, req.TenantID)
	return models.FromDomainTimeOff(created), nil
}

// ListTimeOff получает окна отгулов тенанта, пересекающие период [from, to)
// Доступно только владельцам тенанта
func (s *Service) ListTimeOff(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error) {
	s.logger.Info("ListTimeOff: fetching time off for tenant=%d by user=%d", req.TenantID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidTimeRange)
	}

	windows, err := s.scheduleRepo.ListTimeOff(ctx, req.TenantID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListTimeOff: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListTimeOff: successfully fetched %d windows for tenant=%d", len(windows), req.TenantID)
	return models.FromDomainTimeOffList(windows), nil
}

// DeleteTimeOff удаляет окно отгула
// Доступно только владельцам тенанта
func (s *Service) DeleteTimeOff(ctx context.Context, req *models.DeleteTimeOffRequest) error {
	s.logger.Info("DeleteTimeOff: deleting time off id=%d for tenant=%d by user=%d",
		req.TimeOffID, req.TenantID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.TenantID, req.UserID); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteTimeOff(ctx, req.TenantID, req.TimeOffID); err != nil {
		if errors.Is(err, scheduleRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found for tenant=%d", req.TimeOffID, req.TenantID)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%d: %v", req.TimeOffID, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeOff: successfully deleted time off id=%d", req.TimeOffID)
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

// validateSchedule проверяет корректность рабочих дней и перерывов
// Правила:
//   - не больше одного рабочего дня на день недели
//   - open < close, формат HH:MM
//   - перерыв целиком внутри рабочих часов своего дня недели
func validateSchedule(days []domain.BusinessDay, breaks []domain.BreakWindow) error {
	seen := make(map[domain.Weekday]bool, len(days))
	dayByWeekday := make(map[domain.Weekday]*domain.BusinessDay, len(days))

	for i := range days {
		d := &days[i]
		if !d.Weekday.IsValid() {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, d.Weekday)
		}
		if seen[d.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %s", ErrInvalidInput, d.Weekday)
		}
		seen[d.Weekday] = true

		if err := validateWindow(d.OpenTime, d.CloseTime); err != nil {
			return fmt.Errorf("%w: business day %s: %v", ErrInvalidTimeRange, d.Weekday, err)
		}
		dayByWeekday[d.Weekday] = d
	}

	for i := range breaks {
		b := &breaks[i]
		if !b.Weekday.IsValid() {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, b.Weekday)
		}
		if err := validateWindow(b.StartTime, b.EndTime); err != nil {
			return fmt.Errorf("%w: break on %s: %v", ErrInvalidTimeRange, b.Weekday, err)
		}

		day, ok := dayByWeekday[b.Weekday]
		if !ok {
			return fmt.Errorf("%w: break on %s but tenant is closed that day", ErrInvalidInput, b.Weekday)
		}
		if b.StartTime.IsBefore(day.OpenTime) || day.CloseTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: break %s-%s is outside business hours %s-%s",
				ErrInvalidTimeRange, b.StartTime, b.EndTime, day.OpenTime, day.CloseTime)
		}
	}

	return nil
}

// validateWindow проверяет пару HH:MM и что start < end
func validateWindow(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("invalid start time: %v", err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("invalid end time: %v", err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("start %s must be before end %s", start, end)
	}
	return nil
}
