package notifier

import (
	"context"
	"sync"
)

type collectorKey struct{}

// collector сообщения для пользователя в рамках одного запроса
type collector struct {
	mu       sync.Mutex
	messages []string
}

// NewContext возвращает контекст, в который NotifyError складывает сообщения.
// Handler читает их через Messages после вызова use case.
func NewContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, collectorKey{}, &collector{})
}

// Messages сообщения, накопленные в контексте, без повторов
func Messages(ctx context.Context) []string {
	c, ok := ctx.Value(collectorKey{}).(*collector)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func (c *collector) add(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m == message {
			return
		}
	}
	c.messages = append(c.messages, message)
}
