package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	getAvailableSlots "github.com/slotline/availability-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidTenantID  = "некорректный ID тенанта"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStep      = "некорректный шаг генерации слотов"
	msgTenantNotFound   = "тенант не найден"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger

	// blockPastSlots: true для публичной витрины, false для админки
	blockPastSlots bool
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger, blockPastSlots bool) *Handler {
	return &Handler{
		useCase:        useCase,
		logger:         logger,
		blockPastSlots: blockPastSlots,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD), step (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tenantId из URL
	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Извлекаем serviceId из URL
	serviceIDStr := vars["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем step из query параметров (опционально)
	stepMinutes := 0
	if stepStr := r.URL.Query().Get("step"); stepStr != "" {
		stepMinutes, err = strconv.Atoi(stepStr)
		if err != nil || stepMinutes < 0 {
			h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Invalid step: %s", stepStr)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tenantID, serviceID, dateStr, stepMinutes, h.blockPastSlots)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Service not found: tenant_id=%d, service_id=%d",
				tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/services/{id}/available-slots - Invalid input: tenant_id=%d, service_id=%d, error=%v",
				tenantID, serviceID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /tenants/{id}/services/{id}/available-slots - Failed to get slots: tenant_id=%d, service_id=%d, error=%v",
				tenantID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tenants/{id}/services/{id}/available-slots - Slots retrieved successfully: tenant_id=%d, service_id=%d, slots_count=%d",
		tenantID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
