package create_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidFields       = "некорректные поля: "
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgEmployeeNotFound    = "мастер не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgEmployeeUnavailable = "мастер не работает в выбранную дату"
	msgInvalidDate         = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	validate *validator.Validate
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		validate: newValidator(),
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		fields := invalidFields(err)
		h.logger.Warn("POST /appointments - Validation failed: %v", err)
		if len(fields) == 0 {
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidFields+strings.Join(fields, ", "))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: employee_id=%d, date=%s, time=%s",
				req.EmployeeID, req.AppointmentDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrEmployeeNotFound):
			h.logger.Warn("POST /appointments - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrEmployeeUnavailable):
			h.logger.Warn("POST /appointments - Employee not working: employee_id=%d, date=%s", req.EmployeeID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgEmployeeUnavailable)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: %s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, employee_id=%d",
		result.ID, result.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
