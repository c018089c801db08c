package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	EmployeeID int64     // ID мастера
	ServiceID  int64     // ID услуги, задает длительность
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	EmployeeID      int64
	ServiceID       int64
	DurationMinutes int
	// EmployeeAvailable false, если у мастера выходной или нет смен в этот день
	EmployeeAvailable bool
	Slots             []domain.TimeSlot
}
