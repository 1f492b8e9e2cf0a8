package tenantservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом тенантов платформы
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TenantService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTenant получает профиль тенанта по ID
func (c *Client) GetTenant(ctx context.Context, tenantID int64) (*Tenant, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d", c.baseURL, tenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid tenant ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrTenantNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var tenant Tenant
	if err := json.NewDecoder(resp.Body).Decode(&tenant); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &tenant, nil
}

// GetService получает услугу тенанта по ID
func (c *Client) GetService(ctx context.Context, tenantID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d/services/%d", c.baseURL, tenantID, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// GetTenantWithGracefulDegradation получает профиль тенанта с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded - вызывающая сторона
// может продолжить работу с дефолтной таймзоной и локалью
func (c *Client) GetTenantWithGracefulDegradation(ctx context.Context, tenantID int64) (*Tenant, error) {
	tenant, err := c.GetTenant(ctx, tenantID)
	if err != nil {
		// Критичная бизнес-ошибка пробрасывается дальше
		if err == ErrTenantNotFound {
			c.log.Info("Tenant id=%d not found in directory", tenantID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки
		// парсинга) применяем graceful degradation
		c.log.Error("TenantService unavailable, applying graceful degradation for tenant_id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: tenant_id=%d, error=%v", ErrServiceDegraded, tenantID, err)
	}

	return tenant, nil
}
