package get_employee_appointments

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из параметров запроса.
// includeInactive необязателен, по умолчанию false.
func ToServiceRequest(employeeID int64, dateStr, includeInactiveStr string) (*models.ListAppointmentsRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	includeInactive := false
	if includeInactiveStr != "" {
		includeInactive, err = strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
	}

	return &models.ListAppointmentsRequest{
		EmployeeID:      employeeID,
		Date:            date,
		IncludeInactive: includeInactive,
	}, nil
}
