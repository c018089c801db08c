package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaReader создает reader группы потребителей для топика событий
func NewKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		StartOffset: kafka.LastOffset,
	})
}

const (
	minFetchBackoff = 500 * time.Millisecond
	maxFetchBackoff = 30 * time.Second
)

// Consumer читает события об изменении записей и будит подписчиков
type Consumer struct {
	reader   MessageReader
	notifier ChangeNotifier
	recorder Recorder
	logger   Logger

	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewConsumer создает новый consumer
func NewConsumer(reader MessageReader, notifier ChangeNotifier, recorder Recorder, logger Logger) *Consumer {
	return &Consumer{
		reader:   reader,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,

		minBackoff: minFetchBackoff,
		maxBackoff: maxFetchBackoff,
	}
}

// Run читает сообщения до отмены контекста.
// Ошибки чтения не останавливают consumer: чтение повторяется с экспоненциальной паузой.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Events consumer started")

	backoff := c.minBackoff
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("Events consumer stopped")
				return nil
			}

			c.logger.Warn("Events consumer: %v: %v, retry in %s", ErrFetch, err, backoff)
			c.record("unknown", resultError)

			select {
			case <-ctx.Done():
				c.logger.Info("Events consumer stopped")
				return nil
			case <-time.After(backoff):
			}

			backoff *= 2
			if backoff > c.maxBackoff {
				backoff = c.maxBackoff
			}
			continue
		}
		backoff = c.minBackoff

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Warn("Events consumer: failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}

// Close закрывает reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// handle обрабатывает одно сообщение. Битые сообщения пропускаются,
// чтобы не блокировать партицию.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	var event AppointmentChanged
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("Events consumer: skip malformed message at offset %d: %v", msg.Offset, err)
		c.record("unknown", resultError)
		return
	}

	if event.EmployeeID <= 0 || event.Date == "" {
		c.logger.Warn("Events consumer: skip event %s without employee or date", event.EventID)
		c.record(string(event.Type), resultError)
		return
	}

	if err := c.notifier.Notify(ctx, event.Key()); err != nil {
		c.logger.Warn("Events consumer: notify for %s: %v", event.Key(), err)
		c.record(string(event.Type), resultError)
		return
	}

	c.record(string(event.Type), resultOK)
}

func (c *Consumer) record(eventType, result string) {
	if c.recorder == nil {
		return
	}
	c.recorder.IncEvent(directionIn, eventType, result)
}
