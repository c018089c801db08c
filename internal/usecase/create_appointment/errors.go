package create_appointment

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда мастер не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeUnavailable возвращается, когда у мастера выходной или нет смен в этот день
	ErrEmployeeUnavailable = errors.New("create_appointment: employee is not working on this date")

	// ErrSlotNotAvailable возвращается, когда выбранное время уже недоступно
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
