package create_appointment

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrTenantSuspended возвращается, когда тенант заблокирован на платформе
	ErrTenantSuspended = errors.New("tenant is suspended")

	// ErrTenantClosed возвращается, когда тенант закрыт в указанную дату
	ErrTenantClosed = errors.New("tenant is closed on this date")

	// ErrSlotNotAvailable возвращается, когда запрошенный интервал занят
	// или перекрыт перерывом/отгулом
	ErrSlotNotAvailable = errors.New("requested time slot is not available")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("requested time is outside business hours")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
