package create_time_off

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/api/middleware"
	"github.com/slotline/availability-service/internal/service/schedule"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "некорректный временной диапазон"
	msgTenantNotFound     = "тенант не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/tenants/{tenantId}/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/time-off - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tenants/{id}/time-off - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateTimeOff(r.Context(), req.ToServiceRequest(userID, tenantID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/time-off - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /tenants/{id}/time-off - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("POST /tenants/{id}/time-off - Invalid time range: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("POST /tenants/{id}/time-off - Failed to create time off: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/time-off - Time off created successfully: time_off_id=%d, tenant_id=%d, user_id=%d",
		result.ID, tenantID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
