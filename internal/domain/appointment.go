package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/slotline/availability-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByCustomer AppointmentStatus = "cancelled_by_customer"
	StatusCancelledByTenant   AppointmentStatus = "cancelled_by_tenant"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment represents a booked appointment within a tenant's scheduling module
type Appointment struct {
	ID              int64
	PublicID        uuid.UUID // customer-facing identifier used in booking links
	TenantID        int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	// Customer contact captured on the public booking form
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByCustomer &&
		a.Status != StatusCancelledByTenant &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByCustomer || a.Status == StatusCancelledByTenant
}

// BusyInterval returns the absolute interval occupied by the appointment.
// The interval is half-open: [start, start+duration).
func (a *Appointment) BusyInterval() (start, end time.Time, err error) {
	start, err = a.StartTime.OnDate(a.AppointmentDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(time.Duration(a.DurationMinutes) * time.Minute), nil
}

// TenantAppointmentsFilter filters appointment listings for a tenant
type TenantAppointmentsFilter struct {
	TenantID        int64              // required
	ServiceID       *int64             // optional
	StartDate       *time.Time         // optional period start
	EndDate         *time.Time         // optional period end
	Status          *AppointmentStatus // optional
	IncludeInactive bool               // include cancelled and no-show appointments
}
