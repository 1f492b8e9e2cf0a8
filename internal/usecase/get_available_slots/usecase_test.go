package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/integrations/tenantservice"
)

// 2025-10-16 is a Thursday
var testDate = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

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

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, _ domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeTenantClient struct {
	tenant    *tenantservice.Tenant
	tenantErr error
	service   *tenantservice.Service
}

func (f *fakeTenantClient) GetTenantWithGracefulDegradation(_ context.Context, _ int64) (*tenantservice.Tenant, error) {
	if f.tenantErr != nil {
		return nil, f.tenantErr
	}
	return f.tenant, nil
}

func (f *fakeTenantClient) GetService(_ context.Context, _, _ int64) (*tenantservice.Service, error) {
	if f.service == nil {
		return nil, tenantservice.ErrServiceNotFound
	}
	return f.service, nil
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

func newTestUseCase(schedRepo *fakeScheduleRepo, apptRepo *fakeAppointmentRepo, client *fakeTenantClient, now time.Time) *UseCase {
	return NewUseCase(schedRepo, apptRepo, client, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
}

func defaultFixtures() (*fakeScheduleRepo, *fakeAppointmentRepo, *fakeTenantClient) {
	schedRepo := &fakeScheduleRepo{
		schedule: &domain.WeekSchedule{
			TenantID: 1,
			Days: []domain.BusinessDay{
				{TenantID: 1, Weekday: domain.Thursday, OpenTime: "09:00", CloseTime: "18:00"},
			},
		},
	}
	apptRepo := &fakeAppointmentRepo{}
	client := &fakeTenantClient{
		tenant:  &tenantservice.Tenant{ID: 1, Timezone: "UTC"},
		service: &tenantservice.Service{ID: 7, TenantID: 1, Name: "Haircut", DurationMinutes: 30},
	}
	return schedRepo, apptRepo, client
}

func TestExecute_OpenDayWithoutConflicts(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:00", resp.Slots[0].Label)
	assert.Equal(t, "17:30", resp.Slots[17].Label)
	assert.Equal(t, "UTC", resp.Timezone)
}

func TestExecute_BookedAppointmentExcludesSlots(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	apptRepo.appointments = []*domain.Appointment{{
		ID:              42,
		TenantID:        1,
		AppointmentDate: testDate,
		StartTime:       "12:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 16)
	for _, s := range resp.Slots {
		assert.NotEqual(t, "12:00", s.Label)
		assert.NotEqual(t, "12:30", s.Label)
	}
}

func TestExecute_ClosedWeekday(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	// Расписание только на пятницу, запрошен четверг
	schedRepo.schedule.Days = []domain.BusinessDay{
		{TenantID: 1, Weekday: domain.Friday, OpenTime: "09:00", CloseTime: "18:00"},
	}
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PublicViewBlocksPastSlots(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	now := testDate.Add(14 * time.Hour)

	uc := newTestUseCase(schedRepo, apptRepo, client, now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:       1,
		ServiceID:      7,
		Date:           testDate,
		BlockPastSlots: true,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "14:00", resp.Slots[0].Label)
}

func TestExecute_TenantNotFound(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	client.tenantErr = tenantservice.ErrTenantNotFound
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	client.service = nil
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate)

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DirectoryDegradedFallsBackToUTC(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	client.tenantErr = tenantservice.ErrServiceDegraded
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate.Add(8*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, ServiceID: 7, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.Len(t, resp.Slots, 18)
}

func TestExecute_ValidationFailures(t *testing.T) {
	schedRepo, apptRepo, client := defaultFixtures()
	uc := newTestUseCase(schedRepo, apptRepo, client, testDate)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero tenant", &Request{ServiceID: 7, Date: testDate}},
		{"zero service", &Request{TenantID: 1, Date: testDate}},
		{"zero date", &Request{TenantID: 1, ServiceID: 7}},
		{"negative step", &Request{TenantID: 1, ServiceID: 7, Date: testDate, StepMinutes: -5}},
		{"step below floor", &Request{TenantID: 1, ServiceID: 7, Date: testDate, StepMinutes: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
