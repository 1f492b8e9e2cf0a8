package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotline/availability-service/internal/api/handlers"
	"github.com/slotline/availability-service/internal/domain"
)

// ModuleChecker проверяет, включен ли модуль у тенанта
type ModuleChecker interface {
	IsModuleEnabled(ctx context.Context, tenantID int64, module domain.ModuleCode) (bool, error)
}

// RequireModule гейтит фичевые маршруты: пропускает запрос только если
// модуль включен у тенанта из {tenantId} в URL
// Выключенный модуль отвечает 404, не раскрывая существование маршрута
func RequireModule(checker ModuleChecker, module domain.ModuleCode) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vars := mux.Vars(r)
			tenantIDStr := vars["tenantId"]

			tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
			if err != nil || tenantID <= 0 {
				handlers.RespondBadRequest(w, "некорректный ID тенанта")
				return
			}

			enabled, err := checker.IsModuleEnabled(r.Context(), tenantID, module)
			if err != nil {
				handlers.RespondInternalError(w)
				return
			}

			if !enabled {
				handlers.RespondNotFound(w, "модуль не подключен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
