package get_time_off

import (
	"context"

	"github.com/slotline/availability-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ListTimeOff(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
