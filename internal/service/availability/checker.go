package availability

import (
	"time"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// Checker принимает решение о доступности одного слота
type Checker struct {
	policy       Policy
	timeProvider TimeProvider
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(policy Policy, timeProvider TimeProvider) *Checker {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Checker{
		policy:       policy.withDefaults(),
		timeProvider: timeProvider,
	}
}

// Policy возвращает действующую политику
func (c *Checker) Policy() Policy {
	return c.policy
}

// Now возвращает текущее время провайдера
func (c *Checker) Now() time.Time {
	return c.timeProvider.Now()
}

// StartOfDay переносит календарную дату в часовой пояс провайдера времени.
// Даты из запросов приходят в UTC, а "сегодня" считается по часам барбершопа.
func (c *Checker) StartOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.timeProvider.Now().Location())
}

// IsSlotAvailable проверяет доступность слота. Проверки идут по порядку,
// первая же неудачная отклоняет слот:
//  1. слот внутри рабочих часов;
//  2. для сегодняшней даты слот не раньше now + LeadTime;
//  3. услуга заканчивается внутри рабочих часов (с учётом перехода через полночь);
//  4. услуга не пересекается с занятыми интервалами.
func (c *Checker) IsSlotAvailable(
	slotMinutes int,
	unavailable []domain.UnavailableSlot,
	selectedDate time.Time,
	serviceDuration int,
	workingHoursRanges []string,
) bool {
	if serviceDuration <= 0 {
		return false
	}

	ranges := parseRanges(workingHoursRanges)

	// 1. Рабочие часы
	if !isWithinRanges(slotMinutes, ranges) {
		return false
	}

	// 2. Минимальный запас до начала для сегодняшней даты
	nextDay := isInAfterMidnightPart(slotMinutes, ranges)
	if c.IsWithinLeadTime(selectedDate, slotMinutes, nextDay) {
		return false
	}

	// 3. Конец услуги
	if !endsWithinWorkingHours(slotMinutes, serviceDuration, ranges) {
		return false
	}

	// 4. Пересечения с бронями
	return c.hasNoConflicts(slotMinutes, serviceDuration, unavailable, nextDay)
}

// hasNoConflicts проверяет пересечения с учётом того, что брони одной смены
// через полночь хранятся в минутах одной и той же даты: вечерняя бронь может
// заканчиваться после 1440, а ночная начинаться с 0.
func (c *Checker) hasNoConflicts(slotMinutes, serviceDuration int, unavailable []domain.UnavailableSlot, nextDay bool) bool {
	failOpen := c.policy.TreatInvalidDataAsAvailable

	if !hasEnoughConsecutiveTime(slotMinutes, serviceDuration, unavailable, failOpen) {
		return false
	}

	if nextDay && !hasEnoughConsecutiveTime(slotMinutes+types.MinutesPerDay, serviceDuration, unavailable, failOpen) {
		return false
	}

	if slotMinutes+serviceDuration > types.MinutesPerDay &&
		!hasEnoughConsecutiveTime(slotMinutes-types.MinutesPerDay, serviceDuration, unavailable, failOpen) {
		return false
	}

	return true
}

// IsWithinLeadTime true, если дата - сегодня и слот начинается раньше now + LeadTime.
// nextDay относит слот к следующим календарным суткам (ночной хвост смены).
func (c *Checker) IsWithinLeadTime(selectedDate time.Time, slotMinutes int, nextDay bool) bool {
	now := c.timeProvider.Now()
	if !IsSameDay(selectedDate, now) {
		return false
	}

	minimumBookingTime := now.Add(c.policy.LeadTime)
	return slotDateTime(selectedDate, slotMinutes, nextDay).Before(minimumBookingTime)
}

// IsEmployeeAvailable true, если у сотрудника есть смены в этот день недели
// и дата не отмечена как выходной
func (c *Checker) IsEmployeeAvailable(employee *domain.Employee, selectedDate time.Time) bool {
	if employee == nil {
		return false
	}
	if employee.IsOffDay(selectedDate) {
		return false
	}
	return len(employee.RangesFor(selectedDate)) > 0
}

// endsWithinWorkingHours проверяет конец услуги.
// Если услуга уходит за полночь, хвост должен попасть в ночную часть смены через полночь.
// Иначе последняя занятая минута должна быть внутри рабочих часов.
func endsWithinWorkingHours(slotMinutes, serviceDuration int, ranges []types.TimeRange) bool {
	slotEnd := slotMinutes + serviceDuration

	if slotEnd > types.MinutesPerDay {
		wrappedEnd := slotEnd - types.MinutesPerDay
		for _, r := range ranges {
			if r.CrossesMidnight() && wrappedEnd <= r.End.Minutes() {
				return true
			}
		}
		return false
	}

	return isWithinRanges(slotEnd-1, ranges)
}

// slotDateTime строит абсолютное время начала слота
func slotDateTime(selectedDate time.Time, slotMinutes int, nextDay bool) time.Time {
	y, m, d := selectedDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, selectedDate.Location())
	if nextDay {
		day = day.AddDate(0, 0, 1)
	}
	return day.Add(time.Duration(slotMinutes) * time.Minute)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date, now time.Time) bool {
	now = now.In(date.Location())
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	now = now.In(date.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}
