package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/integrations/notifier"
	getAvailableSlots "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got    *getAvailableSlots.Request
	resp   *getAvailableSlots.Response
	err    error
	notice string
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.notice != "" {
		notifier.NewNotifier(nil, nil, nopLogger{}, 0).NotifyError(ctx, f.notice)
	}
	return f.resp, f.err
}

func newRequest(employeeID, query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employeeID+"/available-slots?"+query, nil)
	return mux.SetURLVars(r, map[string]string{"employeeId": employeeID})
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:              time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC),
		EmployeeID:        1,
		ServiceID:         2,
		DurationMinutes:   30,
		EmployeeAvailable: true,
		Slots: []domain.TimeSlot{
			{Time: "23:30", IsAvailable: true},
			{Time: "00:00", IsAvailable: false, IsAfterMidnight: true},
		},
	}}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("1", "serviceId=2&date=2030-06-14"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), uc.got.EmployeeID)
	assert.Equal(t, int64(2), uc.got.ServiceID)
	assert.Equal(t, "2030-06-14", uc.got.Date.Format(domain.DateFormat))

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []AvailableSlot{
		{Time: "23:30", IsAvailable: true},
		{Time: "00:00", IsAfterMidnight: true},
	}, body.Slots)
	assert.True(t, body.EmployeeAvailable)
	assert.Empty(t, body.Notices)
}

func TestHandle_IncludesNotices(t *testing.T) {
	uc := &fakeUseCase{
		resp:   &getAvailableSlots.Response{Date: time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC), Slots: []domain.TimeSlot{}},
		notice: "расписание недоступно",
	}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("1", "serviceId=2&date=2030-06-14"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"расписание недоступно"}, body.Notices)
	assert.NotNil(t, body.Slots)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name       string
		employeeID string
		query      string
	}{
		{name: "bad employee", employeeID: "abc", query: "serviceId=2&date=2030-06-14"},
		{name: "missing service", employeeID: "1", query: "date=2030-06-14"},
		{name: "bad service", employeeID: "1", query: "serviceId=x&date=2030-06-14"},
		{name: "missing date", employeeID: "1", query: "serviceId=2"},
		{name: "bad date", employeeID: "1", query: "serviceId=2&date=14.06.2030"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := httptest.NewRecorder()

			NewHandler(uc, nopLogger{}).Handle(rec, newRequest(tt.employeeID, tt.query))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: getAvailableSlots.ErrEmployeeNotFound, status: http.StatusNotFound},
		{err: getAvailableSlots.ErrServiceNotFound, status: http.StatusNotFound},
		{err: getAvailableSlots.ErrInvalidDate, status: http.StatusBadRequest},
		{err: getAvailableSlots.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{err: getAvailableSlots.ErrInvalidInput, status: http.StatusBadRequest},
		{err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()

			NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest("1", "serviceId=2&date=2030-06-14"))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
