package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending            AppointmentStatus = "pending"
	StatusConfirmed          AppointmentStatus = "confirmed"
	StatusCompleted          AppointmentStatus = "completed"
	StatusCancelledByClient  AppointmentStatus = "cancelled_by_client"
	StatusCancelledByCompany AppointmentStatus = "cancelled_by_company"
	StatusNoShow             AppointmentStatus = "no_show"
)

// Appointment represents a client's booking with a barber
type Appointment struct {
	ID              int64
	EmployeeID      int64
	ServiceID       int64
	AppointmentDate time.Time
	StartTime       types.TimeOfDay
	// EndMinutes may exceed 1440 when the service runs past midnight
	EndMinutes int
	Status     AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	ClientName   string
	ClientPhone  string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the barber's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByClient &&
		a.Status != StatusCancelledByCompany &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// DurationMinutes returns how long the appointment lasts
func (a *Appointment) DurationMinutes() int {
	return a.EndMinutes - a.StartTime.Minutes()
}

// UnavailableSlot returns the interval the appointment occupies
func (a *Appointment) UnavailableSlot() UnavailableSlot {
	return UnavailableSlot{
		StartTime: a.StartTime.Minutes(),
		EndTime:   a.EndMinutes,
	}
}
