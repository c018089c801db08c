package appointment

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/psqlbuilder"
)

const tableAppointments = "appointments"

var appointmentColumns = []string{
	"id",
	"employee_id",
	"service_id",
	"appointment_date",
	"start_time",
	"end_minutes",
	"status",
	"service_name",
	"service_price",
	"client_name",
	"client_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// dateOnly отбрасывает время, чтобы в запрос ушла дата календаря
func dateOnly(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func buildInsertQuery(a *domain.Appointment) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableAppointments).
		Columns(
			"employee_id",
			"service_id",
			"appointment_date",
			"start_time",
			"end_minutes",
			"status",
			"service_name",
			"service_price",
			"client_name",
			"client_phone",
			"notes",
		).
		Values(
			a.EmployeeID,
			a.ServiceID,
			dateOnly(a.AppointmentDate),
			a.StartTime,
			a.EndMinutes,
			a.Status,
			a.ServiceName,
			a.ServicePrice,
			a.ClientName,
			a.ClientPhone,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
}

func buildGetByIDQuery(id int64) (string, []interface{}, error) {
	return psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

// buildUnavailableSlotsQuery выбирает интервалы активных записей сотрудника на дату.
// forUpdate блокирует строки до конца транзакции создания записи.
func buildUnavailableSlotsQuery(employeeID int64, date time.Time, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select("start_time", "end_minutes").
		From(tableAppointments).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"appointment_date": dateOnly(date)}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		OrderBy("start_time ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildListQuery(employeeID int64, date time.Time, includeInactive bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"appointment_date": dateOnly(date)}).
		OrderBy("start_time ASC")

	if !includeInactive {
		builder = builder.Where(squirrel.NotEq{"status": inactiveStatuses()})
	}

	return builder.ToSql()
}

func buildCancelQuery(id int64, status domain.AppointmentStatus, reason *string) (string, []interface{}, error) {
	return psqlbuilder.Update(tableAppointments).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellableStatuses}).
		ToSql()
}

// cancellableStatuses отменить можно только ещё не состоявшуюся запись
var cancellableStatuses = []string{string(domain.StatusPending), string(domain.StatusConfirmed)}
