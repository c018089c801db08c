package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/ptr"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

var testDate = time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

func TestBuildUnavailableSlotsQuery(t *testing.T) {
	query, args, err := buildUnavailableSlotsQuery(5, testDate, false)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT start_time, end_minutes FROM appointments WHERE employee_id = $1 AND appointment_date = $2 AND status NOT IN ($3,$4,$5) ORDER BY start_time ASC",
		query)
	assert.Equal(t, []interface{}{int64(5), "2030-06-10", "cancelled_by_client", "cancelled_by_company", "no_show"}, args)
}

func TestBuildUnavailableSlotsQuery_ForUpdate(t *testing.T) {
	query, _, err := buildUnavailableSlotsQuery(5, testDate, true)
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY start_time ASC FOR UPDATE")
}

func TestBuildInsertQuery(t *testing.T) {
	a := &domain.Appointment{
		EmployeeID:      5,
		ServiceID:       2,
		AppointmentDate: testDate.Add(13 * time.Hour),
		StartTime:       types.MustParseTimeOfDay("23:30"),
		EndMinutes:      1470,
		Status:          domain.StatusPending,
		ServiceName:     "Fade",
		ServicePrice:    1500,
		ClientName:      "Ivan",
		ClientPhone:     "+79990000000",
		Notes:           ptr.Ptr("beard too"),
	}

	query, args, err := buildInsertQuery(a)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO appointments")
	assert.Contains(t, query, "RETURNING id, created_at, updated_at")
	require.Len(t, args, 11)
	assert.Equal(t, "2030-06-10", args[2], "date is stored without time of day")
	assert.Equal(t, 1470, args[4])
}

func TestBuildListQuery(t *testing.T) {
	query, args, err := buildListQuery(5, testDate, true)
	require.NoError(t, err)
	assert.NotContains(t, query, "status NOT IN")
	assert.Len(t, args, 2)

	query, _, err = buildListQuery(5, testDate, false)
	require.NoError(t, err)
	assert.Contains(t, query, "status NOT IN")
}

func TestBuildCancelQuery(t *testing.T) {
	query, args, err := buildCancelQuery(9, domain.StatusCancelledByClient, ptr.Ptr("sick"))
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE appointments SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3 AND status IN ($4,$5)",
		query)
	require.Len(t, args, 5)
	assert.Equal(t, domain.StatusCancelledByClient, args[0])
	assert.Equal(t, int64(9), args[2])
	assert.Equal(t, []interface{}{"pending", "confirmed"}, args[3:])
}

func TestBuildGetByIDQuery(t *testing.T) {
	query, args, err := buildGetByIDQuery(9)
	require.NoError(t, err)

	// завершённые и отменённые записи тоже читаются по ID
	assert.True(t, strings.HasSuffix(query, "FROM appointments WHERE id = $1"), query)
	assert.NotContains(t, query, "status IN")
	assert.Equal(t, []interface{}{int64(9)}, args)
}
