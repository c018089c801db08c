package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников (мастеров).
// working_hours хранится в JSONB: {"monday": ["09:00-13:00", "14:00-18:00"], ...},
// off_days - массив дат.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"working_hours",
		"off_days::text[]",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		e                    domain.Employee
		workingHours         []byte
		offDays              []string
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&e.Name,
		&workingHours,
		pq.Array(&offDays),
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	e.WorkingHours, err = decodeWorkingHours(workingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: employee_id=%d: %v", ErrDecodeWorkingHours, id, err)
	}
	e.OffDays = offDays
	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return &e, nil
}

// decodeWorkingHours разбирает JSONB рабочих часов; NULL - нет смен
func decodeWorkingHours(data []byte) (domain.WorkingHours, error) {
	wh := domain.WorkingHours{}
	if len(data) == 0 {
		return wh, nil
	}
	if err := json.Unmarshal(data, &wh); err != nil {
		return nil, err
	}
	if wh == nil {
		wh = domain.WorkingHours{}
	}
	return wh, nil
}
