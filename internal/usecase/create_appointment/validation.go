package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.Minutes() < 0 || req.StartTime.Minutes() >= types.MinutesPerDay {
		return fmt.Errorf("%w: startTime out of range", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что на дату можно записаться
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if availability.IsDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	now = now.In(date.Location())
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location()).
		AddDate(0, 0, advanceBookingDays)

	if date.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateService проверяет, что длительность услуги в допустимых границах
func validateService(service *domain.BarberService) error {
	if service.DurationMinutes < domain.MinServiceDurationMinutes ||
		service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service id=%d has unsupported duration %d",
			ErrInternal, service.ID, service.DurationMinutes)
	}
	return nil
}
