package create_time_off

import (
	"time"

	"github.com/slotline/availability-service/internal/service/schedule/models"
)

// CreateTimeOffRequest HTTP request model
// Границы окна в RFC 3339, интервал полуоткрытый [startsAt, endsAt)
type CreateTimeOffRequest struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Reason   *string   `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTimeOffRequest) ToServiceRequest(userID, tenantID int64) *models.CreateTimeOffRequest {
	return &models.CreateTimeOffRequest{
		UserID:   userID,
		TenantID: tenantID,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
		Reason:   r.Reason,
	}
}
