package get_time_off

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/api/middleware"
	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/service/schedule"
	"github.com/slotline/availability-service/internal/service/schedule/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidPeriod   = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgTenantNotFound  = "тенант не найден"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/tenants/{tenantId}/time-off
// Query params: from, to (YYYY-MM-DD); по умолчанию год вперед от текущей даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/time-off - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/time-off - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err = time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/time-off - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/time-off - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		// Верхняя граница дня включается в период
		to = to.AddDate(0, 0, 1)
	}

	req := &models.ListTimeOffRequest{
		UserID:   userID,
		TenantID: tenantID,
		From:     from,
		To:       to,
	}

	result, err := h.service.ListTimeOff(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/time-off - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("GET /tenants/{id}/time-off - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput), errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("GET /tenants/{id}/time-off - Invalid period: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /tenants/{id}/time-off - Failed to list time off: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/time-off - Time off retrieved successfully: tenant_id=%d, user_id=%d, count=%d",
		tenantID, userID, len(result.TimeOff))
	handlers.RespondJSON(w, http.StatusOK, result)
}
