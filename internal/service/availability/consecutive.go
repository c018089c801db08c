package availability

import "github.com/m04kA/SMC-BarberSlots/internal/domain"

// HasEnoughConsecutiveTime проверяет, что услуга длительностью serviceDuration,
// начатая в slotStart, не пересекается ни с одним занятым интервалом.
//
// Пересечение только при реальном наложении: бронь, которая заканчивается
// ровно в начале слота (или начинается ровно в его конце), не мешает.
// Некорректные интервалы игнорируются (fail-open).
func HasEnoughConsecutiveTime(slotStart, serviceDuration int, unavailable []domain.UnavailableSlot) bool {
	return hasEnoughConsecutiveTime(slotStart, serviceDuration, unavailable, true)
}

func hasEnoughConsecutiveTime(
	slotStart int,
	serviceDuration int,
	unavailable []domain.UnavailableSlot,
	treatInvalidAsAvailable bool,
) bool {
	slotEnd := slotStart + serviceDuration

	for _, u := range unavailable {
		if !u.IsValid() {
			if treatInvalidAsAvailable {
				continue
			}
			return false
		}

		if slotStart < u.EndTime && slotEnd > u.StartTime {
			return false
		}
	}

	return true
}
