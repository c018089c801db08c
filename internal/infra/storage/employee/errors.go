package employee

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee.repository: employee not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("employee.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("employee.repository: failed to scan row")

	// ErrDecodeWorkingHours возвращается, когда рабочие часы в БД не разбираются
	ErrDecodeWorkingHours = errors.New("employee.repository: failed to decode working hours")
)
