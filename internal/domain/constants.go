package domain

// Default configuration values
const (
	DefaultDurationMinutes = 30
	DefaultStepMinutes     = 0 // 0 = same as duration (non-overlapping slots)
)

// Business validation constants
const (
	MinStepMinutes             = 5 // finest candidate generation stride
	MinDurationMinutes         = 5
	MaxDurationMinutes         = 480 // 8 hours
	MaxNotesLength             = 500
	MaxCustomerNameLength      = 200
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации занятых интервалов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByCustomer,
	StatusCancelledByTenant,
	StatusNoShow,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
