package cancel_appointment

import "github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancelledBy        string  `json:"cancelledBy"` // client | company
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		CancelledBy:        r.CancelledBy,
		CancellationReason: r.CancellationReason,
	}
}
