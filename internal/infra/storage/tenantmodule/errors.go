package tenantmodule

import "errors"

var (
	// ErrModuleNotFound возвращается, когда запись о модуле не найдена
	ErrModuleNotFound = errors.New("tenantmodule.repository: module record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tenantmodule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tenantmodule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tenantmodule.repository: failed to scan row")
)
