package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	barberServiceRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/barberservice"
	employeeRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/employee"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// UseCase use case для получения слотов записи к мастеру
type UseCase struct {
	employeeRepo       EmployeeRepository
	serviceRepo        ServiceRepository
	appointmentRepo    AppointmentRepository
	cache              UnavailableSlotsCache
	subscriber         Subscriber
	notifier           Notifier
	checker            *availability.Checker
	advanceBookingDays int
	recorder           Recorder
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	cache UnavailableSlotsCache,
	subscriber Subscriber,
	notifier Notifier,
	checker *availability.Checker,
	advanceBookingDays int,
	recorder Recorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		employeeRepo:       employeeRepo,
		serviceRepo:        serviceRepo,
		appointmentRepo:    appointmentRepo,
		cache:              cache,
		subscriber:         subscriber,
		notifier:           notifier,
		checker:            checker,
		advanceBookingDays: advanceBookingDays,
		recorder:           recorder,
		logger:             logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := uc.checker.StartOfDay(req.Date)
	uc.logger.Info("GetAvailableSlots: employee=%d, service=%d, date=%s",
		req.EmployeeID, req.ServiceID, date.Format(domain.DateFormat))

	// 2. Валидация даты
	if err := validateDate(date, uc.checker.Now(), uc.advanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем мастера
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("GetAvailableSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Получаем услугу (длительность)
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, barberServiceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	response := &Response{
		Date:            date,
		EmployeeID:      employee.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.TimeSlot{},
	}

	// 5. Выходной или нет смен - пустой список
	if !uc.checker.IsEmployeeAvailable(employee, date) {
		uc.logger.Info("GetAvailableSlots: employee=%d is not working on %s", employee.ID, date.Format(domain.DateFormat))
		return response, nil
	}
	response.EmployeeAvailable = true

	// 6. Генерируем слоты
	response.Slots = uc.GenerateTimeSlots(ctx, employee.RangesFor(date), date, employee.ID, service.DurationMinutes)

	uc.logger.Info("GetAvailableSlots: generated %d slots for employee=%d, service=%d, date=%s",
		len(response.Slots), employee.ID, service.ID, date.Format(domain.DateFormat))

	return response, nil
}
