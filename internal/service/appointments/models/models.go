package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

var (
	// ErrInvalidCanceller возвращается при неизвестном инициаторе отмены
	ErrInvalidCanceller = errors.New("invalid canceller")
)

const (
	CancelledByClient  = "client"
	CancelledByCompany = "company"
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CancelledBy        string  `json:"cancelledBy"` // client | company
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToDomainStatus статус отмены по инициатору
func (r *CancelAppointmentRequest) ToDomainStatus() (domain.AppointmentStatus, error) {
	switch r.CancelledBy {
	case CancelledByClient:
		return domain.StatusCancelledByClient, nil
	case CancelledByCompany:
		return domain.StatusCancelledByCompany, nil
	default:
		return "", ErrInvalidCanceller
	}
}

// ListAppointmentsRequest запрос на расписание мастера в дату
type ListAppointmentsRequest struct {
	EmployeeID      int64
	Date            time.Time
	IncludeInactive bool
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	EmployeeID         int64      `json:"employeeId"`
	ServiceID          int64      `json:"serviceId"`
	AppointmentDate    string     `json:"appointmentDate"` // "2025-10-15"
	StartTime          string     `json:"startTime"`       // "10:00"
	EndTime            string     `json:"endTime"`         // "10:30", может быть после полуночи
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	ServiceName        string     `json:"serviceName"`
	ServicePrice       float64    `json:"servicePrice"`
	ClientName         string     `json:"clientName"`
	ClientPhone        string     `json:"clientPhone"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		ServiceID:          a.ServiceID,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.StartTime.AddMinutes(a.DurationMinutes()).String(),
		DurationMinutes:    a.DurationMinutes(),
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		ClientName:         a.ClientName,
		ClientPhone:        a.ClientPhone,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}
