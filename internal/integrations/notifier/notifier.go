package notifier

import (
	"context"
	"time"
)

// sourceSlots источник ошибок генерации слотов в метриках и оповещениях
const sourceSlots = "slots"

// Notifier доводит сбой до пользователя (через контекст запроса) и до эксплуатации
// (лог, метрика и, если настроен, webhook). Никогда не возвращает ошибку вызывающему.
type Notifier struct {
	sender   AlertSender
	recorder Recorder
	logger   Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewNotifier создает новый notifier. sender может быть nil - тогда webhook не вызывается.
func NewNotifier(sender AlertSender, recorder Recorder, logger Logger, timeout time.Duration) *Notifier {
	return &Notifier{
		sender:   sender,
		recorder: recorder,
		logger:   logger,
		timeout:  timeout,
		now:      time.Now,
	}
}

// NotifyError регистрирует сообщение об ошибке
func (n *Notifier) NotifyError(ctx context.Context, message string) {
	if c, ok := ctx.Value(collectorKey{}).(*collector); ok {
		c.add(message)
	}

	n.logger.Warn("NotifyError: %s", message)

	if n.recorder != nil {
		n.recorder.IncNotifierError(sourceSlots)
	}

	if n.sender == nil {
		return
	}

	alert := Alert{
		Source:     sourceSlots,
		Message:    message,
		OccurredAt: n.now(),
	}

	// webhook не должен задерживать ответ пользователю
	go n.send(context.WithoutCancel(ctx), alert)
}

// send отправка с graceful degradation: недоступность webhook только логируется
func (n *Notifier) send(ctx context.Context, alert Alert) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	if err := n.sender.Send(ctx, alert); err != nil {
		n.logger.Error("NotifyError: alerts webhook unavailable, alert dropped: %v", err)
	}
}
