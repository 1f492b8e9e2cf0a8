package get_tenant_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// Поддерживаемые параметры: serviceId, startDate, endDate (YYYY-MM-DD),
// status, includeInactive
func ToServiceRequest(userID, tenantID int64, query url.Values) (*models.GetTenantAppointmentsRequest, error) {
	req := &models.GetTenantAppointmentsRequest{
		UserID:   userID,
		TenantID: tenantID,
	}

	if serviceIDStr := query.Get("serviceId"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
