package get_employee_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
)

const (
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/appointments
// Query params: date (required), includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	serviceReq, err := ToServiceRequest(employeeID, r.URL.Query().Get("date"), r.URL.Query().Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /employees/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByEmployeeAndDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /employees/{id}/appointments - Failed to list appointments: employee_id=%d, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /employees/{id}/appointments - Appointments retrieved successfully: employee_id=%d, count=%d",
		employeeID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
