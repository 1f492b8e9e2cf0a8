package create_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	createAppointment "github.com/slotline/availability-service/internal/usecase/create_appointment"
)

const (
	msgInvalidTenantID      = "некорректный ID тенанта"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgTenantNotFound       = "тенант не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgTenantSuspended      = "тенант заблокирован"
	msgTenantClosed         = "тенант закрыт в выбранную дату"
	msgOutsideBusinessHours = "выбранное время вне рабочих часов"
	msgInvalidDate          = "некорректная дата записи"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Slot not available: tenant_id=%d, service_id=%d", tenantID, req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Service not found: tenant_id=%d, service_id=%d", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrTenantSuspended):
			h.logger.Warn("POST /tenants/{id}/appointments - Tenant suspended: tenant_id=%d", tenantID)
			handlers.RespondForbidden(w, msgTenantSuspended)

		case errors.Is(err, createAppointment.ErrTenantClosed):
			h.logger.Warn("POST /tenants/{id}/appointments - Tenant closed: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /tenants/{id}/appointments - Outside business hours: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid appointment date: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /tenants/{id}/appointments - Failed to create appointment: tenant_id=%d, service_id=%d, error=%v",
				tenantID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tenants/{id}/appointments - Appointment created successfully: appointment_id=%d, tenant_id=%d, service_id=%d",
		result.ID, tenantID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
