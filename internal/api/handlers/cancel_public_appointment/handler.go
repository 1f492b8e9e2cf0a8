package cancel_public_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/service/appointments"
)

const (
	msgInvalidPublicID    = "некорректный публичный ID записи"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись не найдена"
	msgCannotCancel       = "запись не может быть отменена"
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

// Handle PATCH /api/v1/appointments/public/{publicId}/cancel
// Публичный маршрут: клиент отменяет свою запись по UUID из ссылки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	publicIDStr := vars["publicId"]

	publicID, err := uuid.Parse(publicIDStr)
	if err != nil {
		h.logger.Warn("PATCH /appointments/public/{id}/cancel - Invalid public ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPublicID)
		return
	}

	// Тело с причиной отмены опционально
	var req CancelAppointmentRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /appointments/public/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if err := h.service.CancelByPublicID(r.Context(), publicID, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/public/{id}/cancel - Appointment not found: public_id=%s", publicID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/public/{id}/cancel - Cannot cancel: public_id=%s", publicID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /appointments/public/{id}/cancel - Failed to cancel: public_id=%s, error=%v", publicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/public/{id}/cancel - Appointment cancelled successfully: public_id=%s", publicID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
