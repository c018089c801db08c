package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// Repository репозиторий для работы с записями к мастерам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsertQuery(appointment)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByIDQuery(id)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// GetUnavailableSlots возвращает занятые интервалы сотрудника на дату.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная
// запись на тот же слот дождалась коммита.
func (r *Repository) GetUnavailableSlots(ctx context.Context, employeeID int64, date time.Time) ([]domain.UnavailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUnavailableSlotsQuery(employeeID, date, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.UnavailableSlot, 0)
	for rows.Next() {
		var start types.TimeOfDay
		var end int
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("%w: GetUnavailableSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, domain.UnavailableSlot{StartTime: start.Minutes(), EndTime: end})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnavailableSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ListByEmployeeAndDate возвращает записи сотрудника на дату по времени начала
func (r *Repository) ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time, includeInactive bool) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(employeeID, date, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmployeeAndDate - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndDate - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Cancel отменяет запись с указанным статусом отмены.
// Запись в статусе, отличном от pending/confirmed, не меняется и даёт ErrAppointmentNotFound.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.AppointmentStatus, reason *string) error {
	if status != domain.StatusCancelledByClient && status != domain.StatusCancelledByCompany {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCancelQuery(id, status, reason)
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.ServiceID,
		&a.AppointmentDate,
		&a.StartTime,
		&a.EndMinutes,
		&a.Status,
		&a.ServiceName,
		&a.ServicePrice,
		&a.ClientName,
		&a.ClientPhone,
		&a.Notes,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
