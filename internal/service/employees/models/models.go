package models

// AvailabilityResponse рабочий день мастера
type AvailabilityResponse struct {
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	IsWorking  bool   `json:"isWorking"`
	IsOffDay   bool   `json:"isOffDay"`
	// Shifts смены "HH:MM-HH:MM"; пустой список, если мастер не работает
	Shifts []ShiftResponse `json:"shifts"`
}

// ShiftResponse одна смена
type ShiftResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	CrossesMidnight bool   `json:"crossesMidnight"`
}
