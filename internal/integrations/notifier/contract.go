package notifier

import "context"

// AlertSender доставка уведомления во внешний канал
type AlertSender interface {
	Send(ctx context.Context, alert Alert) error
}

// Recorder метрики уведомлений
type Recorder interface {
	IncNotifierError(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
