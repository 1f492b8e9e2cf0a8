package delete_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/api/middleware"
	"github.com/slotline/availability-service/internal/service/schedule"
	"github.com/slotline/availability-service/internal/service/schedule/models"
)

const (
	msgInvalidTenantID  = "некорректный ID тенанта"
	msgInvalidTimeOffID = "некорректный ID окна отгула"
	msgNotFound         = "окно отгула не найдено"
	msgTenantNotFound   = "тенант не найден"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/tenants/{tenantId}/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	timeOffIDStr := vars["timeOffId"]
	timeOffID, err := strconv.ParseInt(timeOffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteTimeOffRequest{
		UserID:    userID,
		TenantID:  tenantID,
		TimeOffID: timeOffID,
	}

	if err := h.service.DeleteTimeOff(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Time off not found: time_off_id=%d", timeOffID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /tenants/{id}/time-off/{id} - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /tenants/{id}/time-off/{id} - Failed to delete time off: time_off_id=%d, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /tenants/{id}/time-off/{id} - Time off deleted successfully: time_off_id=%d, tenant_id=%d, user_id=%d",
		timeOffID, tenantID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
