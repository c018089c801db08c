package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	employeeRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/employee"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/internal/service/employees/models"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// Service сервис расписаний мастеров
type Service struct {
	employeeRepo EmployeeRepository
	checker      *availability.Checker
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(employeeRepo EmployeeRepository, checker *availability.Checker, logger Logger) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		checker:      checker,
		logger:       logger,
	}
}

// GetAvailability возвращает смены мастера в дату.
// Некорректные диапазоны в расписании пропускаются, как и при генерации слотов.
func (s *Service) GetAvailability(ctx context.Context, employeeID int64, date time.Time) (*models.AvailabilityResponse, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date = s.checker.StartOfDay(date)
	s.logger.Info("GetAvailability: employee=%d, date=%s", employeeID, date.Format(domain.DateFormat))

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetAvailability: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetAvailability: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	response := &models.AvailabilityResponse{
		EmployeeID: employee.ID,
		Date:       date.Format(domain.DateFormat),
		Weekday:    domain.WeekdayKey(date),
		IsOffDay:   employee.IsOffDay(date),
		IsWorking:  s.checker.IsEmployeeAvailable(employee, date),
		Shifts:     []models.ShiftResponse{},
	}

	if !response.IsWorking {
		return response, nil
	}

	for _, raw := range employee.RangesFor(date) {
		r, err := types.ParseTimeRange(raw)
		if err != nil {
			s.logger.Warn("GetAvailability: skipping malformed range %q of employee=%d: %v", raw, employee.ID, err)
			continue
		}
		response.Shifts = append(response.Shifts, models.ShiftResponse{
			Start:           r.Start.String(),
			End:             r.End.String(),
			CrossesMidnight: r.CrossesMidnight(),
		})
	}

	return response, nil
}
