package get_available_slots

import (
	"fmt"

	"github.com/slotline/availability-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StepMinutes < 0 {
		return fmt.Errorf("%w: stepMinutes must not be negative", ErrInvalidInput)
	}

	if req.StepMinutes > 0 && req.StepMinutes < domain.MinStepMinutes {
		return fmt.Errorf("%w: stepMinutes must be at least %d", ErrInvalidInput, domain.MinStepMinutes)
	}

	return nil
}
