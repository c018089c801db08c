package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	msgs      []kafka.Message
	errs      []error
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return kafka.Message{}, err
	}
	if len(r.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

type fakeNotifier struct {
	keys []cache.Key
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, key cache.Key) error {
	n.keys = append(n.keys, key)
	return n.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              11,
		EmployeeID:      3,
		AppointmentDate: time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustParseTimeOfDay("10:00"),
		EndMinutes:      630,
	}
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducer(w, nil)
	now := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	event := NewAppointmentChanged(TypeAppointmentCreated, testAppointment(), now)

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "3", string(msg.Key))

	var decoded AppointmentChanged
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
	assert.Equal(t, cache.Key{EmployeeID: 3, Date: "2030-06-10"}, decoded.Key())
}

func TestProducer_PublishError(t *testing.T) {
	p := NewProducer(&fakeWriter{err: errors.New("broker unavailable")}, nil)
	event := NewAppointmentChanged(TypeAppointmentCancelled, testAppointment(), time.Now())

	err := p.Publish(context.Background(), event)
	assert.ErrorIs(t, err, ErrPublish)
}

func TestConsumer_Run(t *testing.T) {
	event := NewAppointmentChanged(TypeAppointmentCreated, testAppointment(), time.Now())
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	reader := &fakeReader{msgs: []kafka.Message{
		{Offset: 1, Value: []byte("{not json")},
		{Offset: 2, Value: payload},
		{Offset: 3, Value: []byte(`{"type":"appointment.created"}`)},
	}}
	notifier := &fakeNotifier{}
	c := NewConsumer(reader, notifier, nil, nopLogger{})

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []cache.Key{{EmployeeID: 3, Date: "2030-06-10"}}, notifier.keys)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed, "malformed messages are committed too")
}

func TestConsumer_RetriesFetchErrors(t *testing.T) {
	event := NewAppointmentChanged(TypeAppointmentCancelled, testAppointment(), time.Now())
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	reader := &fakeReader{
		errs: []error{errors.New("broker unavailable"), errors.New("broker unavailable")},
		msgs: []kafka.Message{{Offset: 7, Value: payload}},
	}
	notifier := &fakeNotifier{}
	c := NewConsumer(reader, notifier, nil, nopLogger{})
	c.minBackoff = time.Millisecond
	c.maxBackoff = 2 * time.Millisecond

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, []cache.Key{{EmployeeID: 3, Date: "2030-06-10"}}, notifier.keys)
	assert.Equal(t, []int64{7}, reader.committed)
}

func TestConsumer_StopsWhileBackingOff(t *testing.T) {
	reader := &fakeReader{errs: []error{errors.New("broker unavailable")}}
	c := NewConsumer(reader, &fakeNotifier{}, nil, nopLogger{})
	c.minBackoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestLocalPublisher(t *testing.T) {
	notifier := &fakeNotifier{}
	p := NewLocalPublisher(notifier, nil)
	event := NewAppointmentChanged(TypeAppointmentCancelled, testAppointment(), time.Now())

	require.NoError(t, p.Publish(context.Background(), event))
	assert.Equal(t, []cache.Key{event.Key()}, notifier.keys)
}
