package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date              string          `json:"date"`
	EmployeeID        int64           `json:"employeeId"`
	ServiceID         int64           `json:"serviceId"`
	DurationMinutes   int             `json:"durationMinutes"`
	EmployeeAvailable bool            `json:"employeeAvailable"`
	Slots             []AvailableSlot `json:"slots"`
	// Notices сообщения для пользователя, если расписание загрузить не удалось
	Notices []string `json:"notices,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time            string `json:"time"`
	IsAvailable     bool   `json:"isAvailable"`
	IsAfterMidnight bool   `json:"isAfterMidnight"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, notices []string) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:            slot.Time,
			IsAvailable:     slot.IsAvailable,
			IsAfterMidnight: slot.IsAfterMidnight,
		}
	}

	return &AvailableSlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		EmployeeID:        resp.EmployeeID,
		ServiceID:         resp.ServiceID,
		DurationMinutes:   resp.DurationMinutes,
		EmployeeAvailable: resp.EmployeeAvailable,
		Slots:             slots,
		Notices:           notices,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(employeeID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
