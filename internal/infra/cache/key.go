package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// Key ключ кэша занятых интервалов: сотрудник + дата
type Key struct {
	EmployeeID int64
	Date       string // YYYY-MM-DD
}

// NewKey создает ключ для сотрудника и даты
func NewKey(employeeID int64, date time.Time) Key {
	return Key{
		EmployeeID: employeeID,
		Date:       date.Format(domain.DateFormat),
	}
}

// String возвращает строковое представление ключа (используется в Redis и singleflight)
func (k Key) String() string {
	return fmt.Sprintf("unavailable_slots:%d:%s", k.EmployeeID, k.Date)
}

// VersionString ключ счетчика инвалидаций в Redis
func (k Key) VersionString() string {
	return k.String() + ":version"
}

// Loader загружает занятые интервалы из хранилища при промахе кэша
type Loader func(ctx context.Context) ([]domain.UnavailableSlot, error)

// Recorder собирает метрики попаданий в кэш
type Recorder interface {
	IncCacheRequest(backend, result string)
}

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

func record(r Recorder, backend, result string) {
	if r == nil {
		return
	}
	r.IncCacheRequest(backend, result)
}

func cloneSlots(slots []domain.UnavailableSlot) []domain.UnavailableSlot {
	if slots == nil {
		return []domain.UnavailableSlot{}
	}
	out := make([]domain.UnavailableSlot, len(slots))
	copy(out, slots)
	return out
}
