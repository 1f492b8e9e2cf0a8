package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotline/availability-service/internal/availability"
	"github.com/slotline/availability-service/internal/domain"
	tenantClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// UseCase use case для создания записи на услугу
//
// Генерация слотов (get_available_slots) рекомендательная и выполняется на
// чтение; здесь - авторитетная проверка: сериализуемая транзакция плюс
// SELECT ... FOR UPDATE по записям дня исключают double-booking между
// двумя конкурирующими созданиями
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	tenantClient    TenantServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	tenantClient TenantServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		tenantClient:    tenantClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тенанта
	tenant, err := uc.tenantClient.GetTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("CreateAppointment: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	if tenant.Suspended {
		uc.logger.Warn("CreateAppointment: tenant id=%d is suspended", req.TenantID)
		return nil, ErrTenantSuspended
	}

	// 3. Получаем услугу
	service, err := uc.tenantClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Якорим дату в таймзоне тенанта
	loc := time.UTC
	if parsed, locErr := time.LoadLocation(tenant.Timezone); locErr == nil {
		loc = parsed
	}
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	now := uc.timeProvider.Now().In(loc)

	// 5. Дата записи не может быть в прошлом
	if err := validateDateNotInPast(date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", date.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Appointment

	// 6. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Расписание и отгулы
		schedule, err := uc.scheduleRepo.GetWeekSchedule(txCtx, req.TenantID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		weekday := domain.WeekdayOfDate(date)
		day := schedule.DayFor(weekday)
		if day == nil || !day.HasHours() {
			uc.logger.Warn("CreateAppointment: tenant id=%d is closed on %s", req.TenantID, weekday)
			return ErrTenantClosed
		}

		// 6.2. Запрошенный интервал
		slotStart, err := req.StartTime.OnDate(date)
		if err != nil {
			return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
		}
		slotEnd := slotStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

		dayStart, err := day.OpenTime.OnDate(date)
		if err != nil {
			return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
		}
		dayEnd, err := day.CloseTime.OnDate(date)
		if err != nil {
			return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
		}

		// Интервал должен целиком лежать в рабочем дне; конец ровно в
		// момент закрытия допустим
		if slotStart.Before(dayStart) || slotEnd.After(dayEnd) {
			uc.logger.Warn("CreateAppointment: %s-%s is outside business hours %s-%s",
				slotStart.Format(domain.TimeFormat), slotEnd.Format(domain.TimeFormat),
				day.OpenTime, day.CloseTime)
			return ErrOutsideBusinessHours
		}

		// 6.3. Отгулы на этот день
		timeOff, err := uc.scheduleRepo.ListTimeOff(txCtx, req.TenantID, date, date.AddDate(0, 0, 1))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get time off: %v", err)
			return fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
		}

		// 6.4. Активные записи дня с блокировкой строк (FOR UPDATE)
		filter := domain.TenantAppointmentsFilter{
			TenantID:        req.TenantID,
			StartDate:       &date,
			EndDate:         &date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.5. Проверяем пересечения с перерывами, отгулами и записями
		blocked := availability.BlockedIntervals(
			date,
			schedule.Breaks,
			toTimeOffWindows(timeOff),
			toBusyIntervals(appointments),
		)

		requested := availability.Interval{Start: slotStart, End: slotEnd}
		for _, b := range blocked {
			if requested.Overlaps(b) {
				uc.logger.Warn("CreateAppointment: slot %s-%s overlaps blocked interval %s-%s",
					slotStart.Format(domain.TimeFormat), slotEnd.Format(domain.TimeFormat),
					b.Start.Format(domain.TimeFormat), b.End.Format(domain.TimeFormat))
				return ErrSlotNotAvailable
			}
		}

		// 6.6. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			PublicID:        uuid.New(),
			TenantID:        req.TenantID,
			ServiceID:       req.ServiceID,
			AppointmentDate: date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, public_id=%s",
		result.ID, result.PublicID)

	return &Response{
		ID:              result.ID,
		PublicID:        result.PublicID,
		TenantID:        result.TenantID,
		ServiceID:       result.ServiceID,
		Date:            result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// servicePrice извлекает цену услуги; при отсутствии возвращает 0
func servicePrice(service *tenantClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}

// toTimeOffWindows разыменовывает слайс окон отгулов
func toTimeOffWindows(windows []*domain.TimeOffWindow) []domain.TimeOffWindow {
	result := make([]domain.TimeOffWindow, 0, len(windows))
	for _, w := range windows {
		result = append(result, *w)
	}
	return result
}

// toBusyIntervals конвертирует активные записи в занятые интервалы
func toBusyIntervals(appointments []*domain.Appointment) []availability.Interval {
	busy := make([]availability.Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		start, end, err := appt.BusyInterval()
		if err != nil {
			continue
		}
		busy = append(busy, availability.Interval{Start: start, End: end})
	}
	return busy
}
