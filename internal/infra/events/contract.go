package events

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
)

// MessageWriter *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageReader *kafka.Reader
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ChangeNotifier получатель изменений (realtime.Hub)
type ChangeNotifier interface {
	Notify(ctx context.Context, key cache.Key) error
}

// Recorder метрики событий
type Recorder interface {
	IncEvent(direction, eventType, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
