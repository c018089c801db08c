package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	EmployeeID  int64
	ServiceID   int64
	Date        time.Time // Дата смены (ночной хвост смены относится к дате её начала)
	StartTime   types.TimeOfDay
	ClientName  string
	ClientPhone string
	Notes       *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	EmployeeID      int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeOfDay
	EndTime         types.TimeOfDay
	DurationMinutes int
	Status          string
	ServiceName     string
	ServicePrice    float64
	ClientName      string
	ClientPhone     string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
