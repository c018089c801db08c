package availability

import (
	"github.com/m04kA/SMC-BarberSlots/pkg/types"
)

const afterMidnightBoundary = 12 * 60

// IsWithinWorkingHours проверяет, попадает ли слот в одну из рабочих смен.
//
// Для смены через полночь ("22:00-02:00") слот подходит, если он
// "после полуночи" (00:00-11:59) и не позже конца смены, либо он не
// "после полуночи" и не раньше начала смены.
// Для обычной смены интервал полуоткрытый: start <= slot < end.
//
// Некорректные строки смен пропускаются.
func IsWithinWorkingHours(slotMinutes int, ranges []string) bool {
	return isWithinRanges(slotMinutes, parseRanges(ranges))
}

func isWithinRanges(slotMinutes int, ranges []types.TimeRange) bool {
	for _, r := range ranges {
		if isWithinRange(slotMinutes, r) {
			return true
		}
	}
	return false
}

func isWithinRange(slotMinutes int, r types.TimeRange) bool {
	start := r.Start.Minutes()
	end := r.End.Minutes()

	if r.CrossesMidnight() {
		if isAfterMidnight(slotMinutes) {
			return slotMinutes <= end
		}
		return slotMinutes >= start
	}

	return slotMinutes >= start && slotMinutes < end
}

// isInAfterMidnightPart true, если слот лежит в ночном хвосте смены через полночь.
// Такие слоты относятся к следующим календарным суткам.
func isInAfterMidnightPart(slotMinutes int, ranges []types.TimeRange) bool {
	if !isAfterMidnight(slotMinutes) {
		return false
	}
	for _, r := range ranges {
		if r.CrossesMidnight() && slotMinutes <= r.End.Minutes() {
			return true
		}
	}
	return false
}

func isAfterMidnight(minutes int) bool {
	return minutes >= 0 && minutes < afterMidnightBoundary
}

func parseRanges(ranges []string) []types.TimeRange {
	parsed := make([]types.TimeRange, 0, len(ranges))
	for _, s := range ranges {
		r, err := types.ParseTimeRange(s)
		if err != nil {
			continue
		}
		parsed = append(parsed, r)
	}
	return parsed
}
