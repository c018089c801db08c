package domain

// TimeSlot is a candidate start time generated for one employee on one date.
// Created fresh on every generation call and never mutated afterwards.
type TimeSlot struct {
	Time        string // "HH:MM"
	IsAvailable bool
	// IsAfterMidnight marks slots from the post-midnight tail of a shift
	// that started on the previous evening
	IsAfterMidnight bool
}

// UnavailableSlot is an interval already taken by a booking, in minutes
// since midnight. The caller scopes it to a single (employee, date) pair.
type UnavailableSlot struct {
	StartTime int `json:"start_time"`
	EndTime   int `json:"end_time"`
}

// IsValid returns true if the interval has a positive length
func (u UnavailableSlot) IsValid() bool {
	return u.StartTime >= 0 && u.StartTime < u.EndTime
}
