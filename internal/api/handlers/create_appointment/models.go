package create_appointment

import (
	"time"

	"github.com/slotline/availability-service/internal/domain"
	createAppointment "github.com/slotline/availability-service/internal/usecase/create_appointment"
	"github.com/slotline/availability-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2025-10-16"
	StartTime string `json:"startTime"` // "10:00"

	CustomerName  string  `json:"customerName"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	ID              int64   `json:"id"`
	PublicID        string  `json:"publicId"`
	TenantID        int64   `json:"tenantId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Парсит дату и время начала
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		TenantID:      tenantID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:              resp.ID,
		PublicID:        resp.PublicID.String(),
		TenantID:        resp.TenantID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
	}
}
