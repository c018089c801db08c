package domain

import (
	"strings"
	"time"
)

// WorkingHours maps a lowercase English weekday name ("monday") to the
// employee's shifts for that day, each encoded as "HH:MM-HH:MM"
type WorkingHours map[string][]string

// Employee represents a barber whose schedule slots are generated for
type Employee struct {
	ID           int64
	Name         string
	WorkingHours WorkingHours
	// OffDays holds dates formatted as DateFormat
	OffDays   []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RangesFor returns the shifts for the weekday of the given date
func (e *Employee) RangesFor(date time.Time) []string {
	if e.WorkingHours == nil {
		return nil
	}
	return e.WorkingHours[WeekdayKey(date)]
}

// IsOffDay returns true if the date is listed in the employee's off days
func (e *Employee) IsOffDay(date time.Time) bool {
	formatted := date.Format(DateFormat)
	for _, d := range e.OffDays {
		if d == formatted {
			return true
		}
	}
	return false
}

// WeekdayKey returns the working hours key for the date, e.g. "monday"
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}
