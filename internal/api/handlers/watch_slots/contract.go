package watch_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/infra/realtime"
)

type SlotsSubscriber interface {
	Subscribe(employeeID int64, date time.Time) *realtime.Subscription
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
