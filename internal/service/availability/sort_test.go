package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

func slotTimes(slots []domain.TimeSlot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.Time
	}
	return times
}

func TestSortTimeSlots(t *testing.T) {
	input := []domain.TimeSlot{
		{Time: "23:30"},
		{Time: "01:00", IsAfterMidnight: true},
		{Time: "09:00"},
	}

	sorted := SortTimeSlots(input)

	assert.Equal(t, []string{"09:00", "23:30", "01:00"}, slotTimes(sorted))
	assert.Equal(t, []string{"23:30", "01:00", "09:00"}, slotTimes(input), "input must not be mutated")
}

func TestSortTimeSlots_NightTailOrder(t *testing.T) {
	input := []domain.TimeSlot{
		{Time: "01:30", IsAfterMidnight: true},
		{Time: "22:00"},
		{Time: "00:00", IsAfterMidnight: true},
		{Time: "23:30"},
	}

	assert.Equal(t, []string{"22:00", "23:30", "00:00", "01:30"}, slotTimes(SortTimeSlots(input)))
}

func TestSortTimeSlots_Empty(t *testing.T) {
	assert.Empty(t, SortTimeSlots(nil))
	assert.NotNil(t, SortTimeSlots(nil))
}
