package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
)

// EventType тип события об изменении записи
type EventType string

const (
	TypeAppointmentCreated   EventType = "appointment.created"
	TypeAppointmentCancelled EventType = "appointment.cancelled"
)

// AppointmentChanged событие: у сотрудника поменялась занятость в дату
type AppointmentChanged struct {
	EventID    uuid.UUID `json:"eventId"`
	Type       EventType `json:"type"`
	EmployeeID int64     `json:"employeeId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	OccurredAt time.Time `json:"occurredAt"`
}

// NewAppointmentChanged создает событие для записи
func NewAppointmentChanged(eventType EventType, appointment *domain.Appointment, now time.Time) AppointmentChanged {
	return AppointmentChanged{
		EventID:    uuid.New(),
		Type:       eventType,
		EmployeeID: appointment.EmployeeID,
		Date:       appointment.AppointmentDate.Format(domain.DateFormat),
		OccurredAt: now.UTC(),
	}
}

// Key ключ кэша, который надо сбросить
func (e AppointmentChanged) Key() cache.Key {
	return cache.Key{EmployeeID: e.EmployeeID, Date: e.Date}
}

const (
	directionOut = "out"
	directionIn  = "in"

	resultOK    = "ok"
	resultError = "error"
)
