package tenantservice

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден в каталоге
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у тенанта
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tenantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tenantservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что каталог тенантов недоступен и следует использовать
	// дефолтную таймзону/локаль
	ErrServiceDegraded = errors.New("tenantservice unavailable: graceful degradation applied")
)
