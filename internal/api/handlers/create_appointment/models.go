package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	createAppointment "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID      int64   `json:"employeeId" validate:"required,gt=0"`
	ServiceID       int64   `json:"serviceId" validate:"required,gt=0"`
	AppointmentDate string  `json:"appointmentDate" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime       string  `json:"startTime" validate:"required,datetime=15:04"`            // "10:00"
	ClientName      string  `json:"clientName" validate:"required,min=1,max=100"`
	ClientPhone     string  `json:"clientPhone" validate:"required,min=5,max=20"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	EmployeeID      int64   `json:"employeeId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		EmployeeID:  r.EmployeeID,
		ServiceID:   r.ServiceID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		ClientName:      resp.ClientName,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
