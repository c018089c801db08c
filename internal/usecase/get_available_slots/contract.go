package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/cache"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/realtime"
)

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BarberService, error)
}

// AppointmentRepository источник занятых интервалов
type AppointmentRepository interface {
	GetUnavailableSlots(ctx context.Context, employeeID int64, date time.Time) ([]domain.UnavailableSlot, error)
}

// UnavailableSlotsCache кэш занятых интервалов с объединением параллельных загрузок
type UnavailableSlotsCache interface {
	GetOrLoad(ctx context.Context, key cache.Key, loader cache.Loader) ([]domain.UnavailableSlot, error)
}

// Subscriber реестр подписок на изменения записей
type Subscriber interface {
	Subscribe(key cache.Key) *realtime.Subscription
}

// Notifier канал ошибок, которые нужно показать пользователю
type Notifier interface {
	NotifyError(ctx context.Context, message string)
}

// Recorder метрики генерации
type Recorder interface {
	AddGeneratedSlots(available, unavailable int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
