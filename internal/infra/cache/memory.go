package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

const backendMemory = "memory"

type entry struct {
	fetchedAt time.Time
	value     []domain.UnavailableSlot
}

// Memory in-process кэш занятых интервалов с TTL.
// Одновременные загрузки одного ключа объединяются в один запрос к хранилищу.
type Memory struct {
	ttl      time.Duration
	now      func() time.Time
	recorder Recorder

	mu      sync.Mutex
	entries map[Key]entry
	// generations и inflight есть у ключа только пока идут его загрузки
	generations map[Key]uint64
	inflight    map[Key]int
	lastSweep   time.Time

	group singleflight.Group
}

// NewMemory создает новый in-memory кэш
func NewMemory(ttl time.Duration, recorder Recorder) *Memory {
	if ttl <= 0 {
		ttl = domain.DefaultUnavailableCacheTTL
	}
	return &Memory{
		ttl:         ttl,
		now:         time.Now,
		recorder:    recorder,
		entries:     make(map[Key]entry),
		generations: make(map[Key]uint64),
		inflight:    make(map[Key]int),
	}
}

// GetOrLoad возвращает значение из кэша или загружает его через loader
func (m *Memory) GetOrLoad(ctx context.Context, key Key, loader Loader) ([]domain.UnavailableSlot, error) {
	if value, ok := m.get(key); ok {
		record(m.recorder, backendMemory, resultHit)
		return value, nil
	}
	record(m.recorder, backendMemory, resultMiss)

	res, err, _ := m.group.Do(key.String(), func() (interface{}, error) {
		generation := m.beginLoad(key)

		// загрузка общая для всех ожидающих - отмена одного вызывающего не должна её прерывать
		value, err := loader(context.WithoutCancel(ctx))
		m.endLoad(key, value, err == nil, generation)
		if err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		record(m.recorder, backendMemory, resultError)
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, key, err)
	}

	return cloneSlots(res.([]domain.UnavailableSlot)), nil
}

// Invalidate удаляет ключ. Загрузка, начатая до инвалидации, свой результат не сохранит.
func (m *Memory) Invalidate(_ context.Context, key Key) error {
	m.mu.Lock()
	delete(m.entries, key)
	if m.inflight[key] > 0 {
		m.generations[key]++
	}
	m.mu.Unlock()

	m.group.Forget(key.String())
	return nil
}

// Len количество записей (включая протухшие, ещё не вытесненные)
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) get(key Key) ([]domain.UnavailableSlot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}

	if m.now().Sub(e.fetchedAt) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}

	return cloneSlots(e.value), true
}

// beginLoad регистрирует загрузку ключа и возвращает его текущее поколение
func (m *Memory) beginLoad(key Key) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight[key]++
	return m.generations[key]
}

// endLoad сохраняет результат, если ключ не инвалидировали во время загрузки,
// и удаляет счетчики, когда загрузок ключа больше нет
func (m *Memory) endLoad(key Key, value []domain.UnavailableSlot, ok bool, generation uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if ok && m.generations[key] == generation {
		m.entries[key] = entry{
			fetchedAt: now,
			value:     cloneSlots(value),
		}
	}

	m.inflight[key]--
	if m.inflight[key] <= 0 {
		delete(m.inflight, key)
		delete(m.generations, key)
	}

	m.sweepLocked(now)
}

// sweepLocked не чаще раза в TTL вытесняет протухшие записи
func (m *Memory) sweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.lastSweep = now

	for key, e := range m.entries {
		if now.Sub(e.fetchedAt) >= m.ttl {
			delete(m.entries, key)
		}
	}
}
