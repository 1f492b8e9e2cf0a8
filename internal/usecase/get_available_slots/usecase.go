package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotline/availability-service/internal/availability"
	"github.com/slotline/availability-service/internal/domain"
	tenantClient "github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// UseCase use case для получения доступных слотов для записи
//
// Результат носит рекомендательный характер: между чтением слотов и
// созданием записи другой клиент может занять слот. Авторитетная проверка
// пересечений выполняется на записи (create_appointment) в сериализуемой
// транзакции
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	tenantClient    TenantServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	tenantClient TenantServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		tenantClient:    tenantClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s, blockPast=%t",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.BlockPastSlots)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тенанта; при недоступности каталога продолжаем с UTC
	loc := time.UTC
	tenant, err := uc.tenantClient.GetTenantWithGracefulDegradation(ctx, req.TenantID)
	switch {
	case err == nil:
		if parsed, locErr := time.LoadLocation(tenant.Timezone); locErr == nil {
			loc = parsed
		} else {
			uc.logger.Warn("GetAvailableSlots: tenant=%d has invalid timezone %q, falling back to UTC",
				req.TenantID, tenant.Timezone)
		}
	case errors.Is(err, tenantClient.ErrTenantNotFound):
		uc.logger.Warn("GetAvailableSlots: tenant id=%d not found", req.TenantID)
		return nil, ErrTenantNotFound
	case errors.Is(err, tenantClient.ErrServiceDegraded):
		uc.logger.Warn("GetAvailableSlots: tenant directory degraded, using UTC for tenant=%d", req.TenantID)
	default:
		uc.logger.Error("GetAvailableSlots: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Получаем услугу - её длительность задаёт длину слота
	service, err := uc.tenantClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Якорим дату в таймзоне тенанта
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	nextDay := date.AddDate(0, 0, 1)
	now := uc.timeProvider.Now().In(loc)

	// 5. Получаем недельное расписание (часы + перерывы)
	schedule, err := uc.scheduleRepo.GetWeekSchedule(ctx, req.TenantID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 6. Получаем отгулы, пересекающиеся с этим днём
	timeOff, err := uc.scheduleRepo.ListTimeOff(ctx, req.TenantID, date, nextDay)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time off: %v", err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 7. Получаем активные записи на эту дату
	filter := domain.TenantAppointmentsFilter{
		TenantID:        req.TenantID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false, // Только записи, занимающие слот
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты
	weekday := domain.WeekdayOfDate(date)
	slots := availability.GenerateSlots(availability.Params{
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     req.StepMinutes,
		Day:             schedule.DayFor(weekday),
		Breaks:          schedule.Breaks,
		TimeOff:         toTimeOffWindows(timeOff),
		Busy:            toBusyIntervals(appointments, uc.logger),
		BlockPastSlots:  req.BlockPastSlots,
		Now:             now,
	})

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%d, service=%d, date=%s",
		len(slots), req.TenantID, req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:      date,
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Timezone:  loc.String(),
		Slots:     slots,
	}, nil
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
// Записи с некорректным временем начала пропускаются
func toBusyIntervals(appointments []*domain.Appointment, logger Logger) []availability.Interval {
	busy := make([]availability.Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		start, end, err := appt.BusyInterval()
		if err != nil {
			logger.Warn("GetAvailableSlots: appointment id=%d has invalid start time, skipping: %v", appt.ID, err)
			continue
		}
		busy = append(busy, availability.Interval{Start: start, End: end})
	}
	return busy
}
