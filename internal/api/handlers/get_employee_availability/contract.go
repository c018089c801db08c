package get_employee_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/service/employees/models"
)

type EmployeeService interface {
	GetAvailability(ctx context.Context, employeeID int64, date time.Time) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
