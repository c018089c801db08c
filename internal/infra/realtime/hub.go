package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
)

// Invalidator сбрасывает кэш занятых интервалов
type Invalidator interface {
	Invalidate(ctx context.Context, key cache.Key) error
}

// Recorder метрики подписок
type Recorder interface {
	AddSubscribers(delta int)
}

// Hub реестр подписчиков на изменения слотов сотрудника в конкретную дату
type Hub struct {
	invalidator Invalidator
	recorder    Recorder

	mu   sync.Mutex
	subs map[cache.Key]map[*Subscription]struct{}
}

// NewHub создает новый hub. invalidator и recorder могут быть nil.
func NewHub(invalidator Invalidator, recorder Recorder) *Hub {
	return &Hub{
		invalidator: invalidator,
		recorder:    recorder,
		subs:        make(map[cache.Key]map[*Subscription]struct{}),
	}
}

// Subscribe регистрирует подписку на изменения ключа.
// Подписка живет до вызова Unsubscribe.
func (h *Hub) Subscribe(key cache.Key) *Subscription {
	sub := &Subscription{
		key: key,
		ch:  make(chan struct{}, 1),
		hub: h,
	}

	h.mu.Lock()
	set, ok := h.subs[key]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[key] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	if h.recorder != nil {
		h.recorder.AddSubscribers(1)
	}
	return sub
}

// Notify сбрасывает кэш ключа и будит всех его подписчиков.
// Сигналы схлопываются: подписчик, не успевший прочитать прошлый сигнал, получит один.
func (h *Hub) Notify(ctx context.Context, key cache.Key) error {
	var invalidateErr error
	if h.invalidator != nil {
		if err := h.invalidator.Invalidate(ctx, key); err != nil {
			invalidateErr = fmt.Errorf("%w: Notify - invalidate %s: %v", ErrInvalidate, key, err)
		}
	}

	h.mu.Lock()
	for sub := range h.subs[key] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()

	return invalidateErr
}

// Subscribers количество подписчиков ключа
func (h *Hub) Subscribers(key cache.Key) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	set := h.subs[sub.key]
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.key)
	}
	close(sub.ch)
	h.mu.Unlock()

	if h.recorder != nil {
		h.recorder.AddSubscribers(-1)
	}
}

// Subscription подписка на изменения слотов
type Subscription struct {
	key  cache.Key
	ch   chan struct{}
	hub  *Hub
	once sync.Once
}

// Changes канал сигналов об изменении. Закрывается после Unsubscribe.
func (s *Subscription) Changes() <-chan struct{} {
	return s.ch
}

// Key ключ подписки
func (s *Subscription) Key() cache.Key {
	return s.key
}

// Unsubscribe снимает подписку; повторные вызовы безопасны
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}
