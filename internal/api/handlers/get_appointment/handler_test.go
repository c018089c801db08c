package get_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, StartTime: "10:00", Status: "confirmed"}, nil
}

func serve(service AppointmentService, id string) *httptest.ResponseRecorder {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+id, nil),
		map[string]string{"appointmentId": id})
	rec := httptest.NewRecorder()
	NewHandler(service, nopLogger{}).Handle(rec, r)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeService{}, "5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
	assert.Contains(t, rec.Body.String(), `"startTime":"10:00"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "five").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: appointments.ErrAppointmentNotFound}, "5").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: errors.New("boom")}, "5").Code)
}
