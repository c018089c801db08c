package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter создает writer для топика событий.
// Ключ сообщения - ID сотрудника, поэтому события одного сотрудника идут в одну партицию.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// Producer публикует события об изменении записей в Kafka
type Producer struct {
	writer   MessageWriter
	recorder Recorder
}

// NewProducer создает новый producer
func NewProducer(writer MessageWriter, recorder Recorder) *Producer {
	return &Producer{
		writer:   writer,
		recorder: recorder,
	}
}

// Publish отправляет событие
func (p *Producer) Publish(ctx context.Context, event AppointmentChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.record(event.Type, resultError)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.EmployeeID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.EventID.String())},
		},
		Time: event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.record(event.Type, resultError)
		return fmt.Errorf("%w: event_id=%s: %v", ErrPublish, event.EventID, err)
	}

	p.record(event.Type, resultOK)
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

func (p *Producer) record(eventType EventType, result string) {
	if p.recorder == nil {
		return
	}
	p.recorder.IncEvent(directionOut, string(eventType), result)
}
