package get_tenant_modules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/api/middleware"
	"github.com/slotline/availability-service/internal/service/modules"
	"github.com/slotline/availability-service/internal/service/modules/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgTenantNotFound  = "тенант не найден"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ModuleService
	logger  Logger
}

func NewHandler(service ModuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/modules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/modules - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/modules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListModulesRequest{
		UserID:   userID,
		TenantID: tenantID,
	}

	result, err := h.service.ListModules(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, modules.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/modules - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, modules.ErrAccessDenied):
			h.logger.Warn("GET /tenants/{id}/modules - Access denied: tenant_id=%d, user_id=%d", tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /tenants/{id}/modules - Failed to list modules: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/modules - Modules retrieved successfully: tenant_id=%d, user_id=%d", tenantID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
