package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
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

// Handle GET /api/v1/tenants/{tenantId}/schedule
// Публичный маршрут: расписание отображается на странице бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/schedule - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /tenants/{id}/schedule - Failed to get schedule: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/schedule - Schedule retrieved successfully: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
