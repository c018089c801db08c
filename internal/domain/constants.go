package domain

import "time"

// Default slot generation values
const (
	DefaultSlotIntervalMinutes     = 30
	DefaultMinBookingLeadMinutes   = 15
	DefaultUnavailableCacheTTL     = 5 * time.Minute
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultTreatInvalidAsAvailable = true
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that no longer occupy the employee's time
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusCancelledByCompany,
	StatusNoShow,
}
