package get_public_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/service/appointments"
)

const (
	msgInvalidPublicID = "некорректный публичный ID записи"
	msgNotFound        = "запись не найдена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/public/{publicId}
// Публичный маршрут: право на просмотр дает знание UUID из ссылки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	publicIDStr := vars["publicId"]

	publicID, err := uuid.Parse(publicIDStr)
	if err != nil {
		h.logger.Warn("GET /appointments/public/{id} - Invalid public ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPublicID)
		return
	}

	appt, err := h.service.GetByPublicID(r.Context(), publicID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/public/{id} - Appointment not found: public_id=%s", publicID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/public/{id} - Failed to get appointment: public_id=%s, error=%v", publicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/public/{id} - Appointment retrieved successfully: public_id=%s", publicID)
	handlers.RespondJSON(w, http.StatusOK, appt)
}
