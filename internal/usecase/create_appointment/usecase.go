package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/events"
	barberServiceRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/barberservice"
	employeeRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/employee"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
)

// UseCase use case для создания записи к мастеру
type UseCase struct {
	appointmentRepo    AppointmentRepository
	employeeRepo       EmployeeRepository
	serviceRepo        ServiceRepository
	txManager          TransactionManager
	publisher          EventPublisher
	checker            *availability.Checker
	advanceBookingDays int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	checker *availability.Checker,
	advanceBookingDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		employeeRepo:       employeeRepo,
		serviceRepo:        serviceRepo,
		txManager:          txManager,
		publisher:          publisher,
		checker:            checker,
		advanceBookingDays: advanceBookingDays,
		logger:             logger,
	}
}

// Execute выполняет use case создания записи.
// Доступность перепроверяется в сериализуемой транзакции по данным из БД, минуя кэш.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := uc.checker.StartOfDay(req.Date)
	uc.logger.Info("CreateAppointment: employee=%d, service=%d, date=%s, time=%s",
		req.EmployeeID, req.ServiceID, date.Format(domain.DateFormat), req.StartTime)

	// 2. Валидация даты
	if err := validateDate(date, uc.checker.Now(), uc.advanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем мастера
	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateAppointment: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, barberServiceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := validateService(service); err != nil {
		uc.logger.Error("CreateAppointment: %v", err)
		return nil, err
	}

	// 5. Мастер работает в этот день
	if !uc.checker.IsEmployeeAvailable(employee, date) {
		uc.logger.Warn("CreateAppointment: employee=%d is not working on %s", employee.ID, date.Format(domain.DateFormat))
		return nil, ErrEmployeeUnavailable
	}
	ranges := employee.RangesFor(date)

	var result *domain.Appointment

	// 6. Перепроверка и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Занятые интервалы с блокировкой (FOR UPDATE)
		unavailable, err := uc.appointmentRepo.GetUnavailableSlots(txCtx, employee.ID, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get unavailable slots: %v", err)
			return fmt.Errorf("%w: failed to get unavailable slots: %v", ErrInternal, err)
		}

		// 6.2. Та же проверка, что и при генерации слотов
		if !uc.checker.IsSlotAvailable(req.StartTime.Minutes(), unavailable, date, service.DurationMinutes, ranges) {
			uc.logger.Warn("CreateAppointment: slot %s is not available for employee=%d on %s",
				req.StartTime, employee.ID, date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.3. Сохраняем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			EmployeeID:      employee.ID,
			ServiceID:       service.ID,
			AppointmentDate: date,
			StartTime:       req.StartTime,
			EndMinutes:      req.StartTime.Minutes() + service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 7. Оповещаем подписчиков; запись уже сохранена, поэтому ошибка только логируется
	event := events.NewAppointmentChanged(events.TypeAppointmentCreated, result, uc.checker.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish %s for appointment id=%d: %v", event.Type, result.ID, err)
	}

	return toResponse(result), nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate,
		StartTime:       a.StartTime,
		EndTime:         a.StartTime.AddMinutes(a.DurationMinutes()),
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		ServiceName:     a.ServiceName,
		ServicePrice:    a.ServicePrice,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
