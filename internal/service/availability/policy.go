package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

// Policy параметры расчёта доступности
type Policy struct {
	// SlotInterval шаг генерации слотов в минутах
	SlotInterval int
	// LeadTime минимальный запас между "сейчас" и началом слота на сегодня
	LeadTime time.Duration
	// TreatInvalidDataAsAvailable если true, некорректные интервалы занятости
	// игнорируются (слот считается свободным), иначе слот отклоняется
	TreatInvalidDataAsAvailable bool
}

// DefaultPolicy возвращает политику со значениями по умолчанию: шаг 30 минут, запас 15 минут
func DefaultPolicy() Policy {
	return Policy{
		SlotInterval:                domain.DefaultSlotIntervalMinutes,
		LeadTime:                    domain.DefaultMinBookingLeadMinutes * time.Minute,
		TreatInvalidDataAsAvailable: domain.DefaultTreatInvalidAsAvailable,
	}
}

// withDefaults подставляет значения по умолчанию вместо нулевых
func (p Policy) withDefaults() Policy {
	if p.SlotInterval <= 0 {
		p.SlotInterval = domain.DefaultSlotIntervalMinutes
	}
	if p.LeadTime < 0 {
		p.LeadTime = 0
	}
	return p
}
