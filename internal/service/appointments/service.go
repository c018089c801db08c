package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByEmployeeAndDate расписание мастера в дату, упорядоченное по времени начала
func (s *Service) ListByEmployeeAndDate(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.EmployeeID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: employeeID and date are required", ErrInvalidInput)
	}

	s.logger.Info("ListByEmployeeAndDate: employee=%d, date=%s, includeInactive=%t",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	list, err := s.appointmentRepo.ListByEmployeeAndDate(ctx, req.EmployeeID, req.Date, req.IncludeInactive)
	if err != nil {
		s.logger.Error("ListByEmployeeAndDate: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет запись. Отменить можно только pending/confirmed.
// После отмены освободившийся интервал публикуется как appointment.cancelled.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by %s", id, req.CancelledBy)

	status, err := req.ToDomainStatus()
	if err != nil {
		s.logger.Warn("Cancel: invalid canceller=%q for appointment id=%d", req.CancelledBy, id)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, status, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			// статус успели поменять между чтением и обновлением
			s.logger.Warn("Cancel: appointment id=%d changed concurrently", id)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", id, status)

	event := events.NewAppointmentChanged(events.TypeAppointmentCancelled, appointment, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Cancel: failed to publish %s for appointment id=%d: %v", event.Type, id, err)
	}

	return nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) now() time.Time {
	if s.timeProvider == nil {
		return time.Now()
	}
	return s.timeProvider.Now()
}
