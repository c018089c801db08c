package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/integrations/notifier"
	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

const (
	msgInvalidEmployeeID  = "некорректный ID мастера"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingServiceID   = "ID услуги обязателен"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound   = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDateInPast         = "дата уже прошла"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgInvalidSlotRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /employees/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(employeeID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// сообщения notifier попадают в ответ этого запроса
	ctx := notifier.NewContext(r.Context())

	result, err := h.useCase.Execute(ctx, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /employees/{id}/available-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /employees/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /employees/{id}/available-slots - Date in past: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /employees/{id}/available-slots - Date too far: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotRequest)

		default:
			h.logger.Error("GET /employees/{id}/available-slots - Failed to get slots: employee_id=%d, service_id=%d, error=%v",
				employeeID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, notifier.Messages(ctx))

	h.logger.Info("GET /employees/{id}/available-slots - Slots retrieved successfully: employee_id=%d, service_id=%d, slots_count=%d",
		employeeID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
