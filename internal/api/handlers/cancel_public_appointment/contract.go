package cancel_public_appointment

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	CancelByPublicID(ctx context.Context, publicID uuid.UUID, reason string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
