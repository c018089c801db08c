package availability

import (
	"slices"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

// SortTimeSlots возвращает новый отсортированный список слотов.
// Ночные слоты (после полуночи) всегда идут после вечерних,
// внутри каждой группы - по возрастанию времени.
func SortTimeSlots(slots []domain.TimeSlot) []domain.TimeSlot {
	sorted := slices.Clone(slots)
	if sorted == nil {
		return []domain.TimeSlot{}
	}

	slices.SortStableFunc(sorted, func(a, b domain.TimeSlot) int {
		if a.IsAfterMidnight != b.IsAfterMidnight {
			if a.IsAfterMidnight {
				return 1
			}
			return -1
		}
		return slotMinutes(a) - slotMinutes(b)
	})

	return sorted
}

func slotMinutes(slot domain.TimeSlot) int {
	m, err := types.TimeToMinutes(slot.Time)
	if err != nil {
		return 0
	}
	return m
}
