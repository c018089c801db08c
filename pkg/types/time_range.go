package types

import (
	"fmt"
	"strings"
)

// TimeRange рабочая смена "HH:MM-HH:MM". Конец может быть раньше начала -
// тогда смена переходит через полночь.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseTimeRange разбирает строку "HH:MM-HH:MM"
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
	}

	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}

	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimeRange, s, err)
	}

	return TimeRange{Start: start, End: end}, nil
}

// CrossesMidnight true, если смена заканчивается на следующие сутки
func (r TimeRange) CrossesMidnight() bool {
	return r.End < r.Start
}

// String форматирует диапазон обратно в "HH:MM-HH:MM"
func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}
