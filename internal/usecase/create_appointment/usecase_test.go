package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
	"github.com/slotline/availability-service/pkg/ptr"
)

// 2025-10-16 is a Thursday
var testDate = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

type fakeAppointmentRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = 101
	appt.CreatedAt = time.Now()
	f.created = appt
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeScheduleRepo struct {
	schedule *domain.WeekSchedule
	timeOff  []*domain.TimeOffWindow
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, tenantID int64) (*domain.WeekSchedule, error) {
	if f.schedule != nil {
		return f.schedule, nil
	}
	return &domain.WeekSchedule{TenantID: tenantID}, nil
}

func (f *fakeScheduleRepo) ListTimeOff(_ context.Context, _ int64, _, _ time.Time) ([]*domain.TimeOffWindow, error) {
	return f.timeOff, nil
}

type fakeTenantClient struct {
	tenant  *tenantservice.Tenant
	service *tenantservice.Service
}

func (f *fakeTenantClient) GetTenant(_ context.Context, _ int64) (*tenantservice.Tenant, error) {
	if f.tenant == nil {
		return nil, tenantservice.ErrTenantNotFound
	}
	return f.tenant, nil
}

func (f *fakeTenantClient) GetService(_ context.Context, _, _ int64) (*tenantservice.Service, error) {
	if f.service == nil {
		return nil, tenantservice.ErrServiceNotFound
	}
	return f.service, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultFixtures() (*fakeAppointmentRepo, *fakeScheduleRepo, *fakeTenantClient) {
	apptRepo := &fakeAppointmentRepo{}
	schedRepo := &fakeScheduleRepo{
		schedule: &domain.WeekSchedule{
			TenantID: 1,
			Days: []domain.BusinessDay{
				{TenantID: 1, Weekday: domain.Thursday, OpenTime: "09:00", CloseTime: "18:00"},
			},
		},
	}
	client := &fakeTenantClient{
		tenant:  &tenantservice.Tenant{ID: 1, Timezone: "UTC"},
		service: &tenantservice.Service{ID: 7, TenantID: 1, Name: "Haircut", DurationMinutes: 30},
	}
	return apptRepo, schedRepo, client
}

func newTestUseCase(apptRepo *fakeAppointmentRepo, schedRepo *fakeScheduleRepo, client *fakeTenantClient) *UseCase {
	return NewUseCase(apptRepo, schedRepo, client, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testDate.Add(8 * time.Hour)})
}

func validRequest() *Request {
	return &Request{
		TenantID:      1,
		ServiceID:     7,
		Date:          testDate,
		StartTime:     "10:00",
		CustomerName:  "Anna Schmidt",
		CustomerEmail: ptr.Ptr("anna@example.com"),
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	uc := newTestUseCase(apptRepo, schedRepo, client)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", resp.PublicID.String())
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Haircut", resp.ServiceName)

	require.NotNil(t, apptRepo.created)
	assert.Equal(t, domain.StatusConfirmed, apptRepo.created.Status)
}

func TestExecute_SlotTakenByActiveAppointment(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	apptRepo.existing = []*domain.Appointment{{
		ID:              55,
		TenantID:        1,
		AppointmentDate: testDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	apptRepo.existing = []*domain.Appointment{{
		ID:              55,
		TenantID:        1,
		AppointmentDate: testDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusCancelledByCustomer,
	}}
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_AdjacentAppointmentDoesNotBlock(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	// Существующая запись заканчивается ровно в 10:00 - граница не пересечение
	apptRepo.existing = []*domain.Appointment{{
		ID:              55,
		TenantID:        1,
		AppointmentDate: testDate,
		StartTime:       "09:30",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.NoError(t, err)
}

func TestExecute_BreakBlocksSlot(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	schedRepo.schedule.Breaks = []domain.BreakWindow{
		{TenantID: 1, Weekday: domain.Thursday, StartTime: "10:00", EndTime: "11:00"},
	}
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TimeOffBlocksSlot(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	schedRepo.timeOff = []*domain.TimeOffWindow{{
		TenantID: 1,
		StartsAt: testDate.Add(9 * time.Hour),
		EndsAt:   testDate.Add(18 * time.Hour),
	}}
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	uc := newTestUseCase(apptRepo, schedRepo, client)

	req := validRequest()
	req.StartTime = "17:45" // 17:45 + 30 минут выходит за 18:00

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_SlotEndingExactlyAtCloseIsAllowed(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	uc := newTestUseCase(apptRepo, schedRepo, client)

	req := validRequest()
	req.StartTime = "17:30"

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_ClosedDay(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	schedRepo.schedule.Days = nil
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTenantClosed)
}

func TestExecute_DateInPast(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	uc := NewUseCase(apptRepo, schedRepo, client, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testDate.AddDate(0, 0, 3)})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SuspendedTenant(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	client.tenant.Suspended = true
	uc := newTestUseCase(apptRepo, schedRepo, client)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTenantSuspended)
}

func TestExecute_ValidationFailures(t *testing.T) {
	apptRepo, schedRepo, client := defaultFixtures()
	uc := newTestUseCase(apptRepo, schedRepo, client)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero tenant", func(r *Request) { r.TenantID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"empty customer name", func(r *Request) { r.CustomerName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
