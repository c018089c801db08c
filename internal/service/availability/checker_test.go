package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

// понедельник, далеко в будущем относительно "сейчас"
var futureDate = time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)

func newTestChecker(now time.Time) *Checker {
	return NewChecker(DefaultPolicy(), fixedTimeProvider{now: now})
}

func minutes(h, m int) int {
	return h*60 + m
}

func TestIsWithinWorkingHours_NonCrossing(t *testing.T) {
	ranges := []string{"09:00-17:00"}

	assert.True(t, IsWithinWorkingHours(minutes(9, 0), ranges))
	assert.True(t, IsWithinWorkingHours(minutes(16, 59), ranges))
	assert.False(t, IsWithinWorkingHours(minutes(17, 0), ranges), "end is exclusive")
	assert.False(t, IsWithinWorkingHours(minutes(8, 59), ranges))
}

func TestIsWithinWorkingHours_Crossing(t *testing.T) {
	ranges := []string{"22:00-02:00"}

	assert.True(t, IsWithinWorkingHours(minutes(23, 0), ranges))
	assert.True(t, IsWithinWorkingHours(minutes(1, 0), ranges))
	assert.True(t, IsWithinWorkingHours(minutes(2, 0), ranges), "after-midnight end is inclusive")
	assert.False(t, IsWithinWorkingHours(minutes(3, 0), ranges))
	assert.False(t, IsWithinWorkingHours(minutes(12, 0), ranges))
}

func TestIsWithinWorkingHours_MultipleAndInvalid(t *testing.T) {
	assert.False(t, IsWithinWorkingHours(minutes(10, 0), nil))
	assert.False(t, IsWithinWorkingHours(minutes(10, 0), []string{"garbage"}))

	ranges := []string{"broken", "09:00-12:00", "14:00-18:00"}
	assert.True(t, IsWithinWorkingHours(minutes(15, 0), ranges))
	assert.False(t, IsWithinWorkingHours(minutes(13, 0), ranges))
}

func TestHasEnoughConsecutiveTime(t *testing.T) {
	booked := []domain.UnavailableSlot{{StartTime: 600, EndTime: 660}}

	assert.False(t, HasEnoughConsecutiveTime(minutes(9, 45), 30, booked), "09:45-10:15 overlaps 10:00-11:00")
	assert.True(t, HasEnoughConsecutiveTime(minutes(9, 0), 30, booked), "09:00-09:30 is clear")
	assert.True(t, HasEnoughConsecutiveTime(minutes(9, 30), 30, booked), "adjacent end is not an overlap")
	assert.True(t, HasEnoughConsecutiveTime(minutes(11, 0), 30, booked), "adjacent start is not an overlap")
	assert.False(t, HasEnoughConsecutiveTime(minutes(10, 0), 60, booked), "exact overlap")
	assert.True(t, HasEnoughConsecutiveTime(minutes(10, 0), 60, nil))
}

func TestHasEnoughConsecutiveTime_InvalidDataPolicy(t *testing.T) {
	malformed := []domain.UnavailableSlot{{StartTime: 700, EndTime: 600}}

	assert.True(t, HasEnoughConsecutiveTime(minutes(10, 0), 30, malformed))

	strict := NewChecker(Policy{TreatInvalidDataAsAvailable: false}, fixedTimeProvider{now: futureDate.AddDate(-1, 0, 0)})
	assert.False(t, strict.IsSlotAvailable(minutes(10, 0), malformed, futureDate, 30, []string{"09:00-13:00"}))

	lenient := newTestChecker(futureDate.AddDate(-1, 0, 0))
	assert.True(t, lenient.IsSlotAvailable(minutes(10, 0), malformed, futureDate, 30, []string{"09:00-13:00"}))
}

func TestIsSlotAvailable(t *testing.T) {
	now := futureDate.AddDate(0, 0, -7)

	tests := []struct {
		name        string
		slot        int
		duration    int
		ranges      []string
		unavailable []domain.UnavailableSlot
		want        bool
	}{
		{name: "inside shift", slot: minutes(9, 0), duration: 30, ranges: []string{"09:00-13:00"}, want: true},
		{name: "last slot ends exactly at shift end", slot: minutes(12, 30), duration: 30, ranges: []string{"09:00-13:00"}, want: true},
		{name: "service runs past shift end", slot: minutes(12, 45), duration: 30, ranges: []string{"09:00-13:00"}, want: false},
		{name: "outside working hours", slot: minutes(13, 0), duration: 30, ranges: []string{"09:00-13:00"}, want: false},
		{name: "zero duration", slot: minutes(9, 0), duration: 0, ranges: []string{"09:00-13:00"}, want: false},
		{
			name: "booked", slot: minutes(10, 0), duration: 30, ranges: []string{"09:00-13:00"},
			unavailable: []domain.UnavailableSlot{{StartTime: 600, EndTime: 630}}, want: false,
		},
		{
			name: "adjacent to booking", slot: minutes(9, 30), duration: 30, ranges: []string{"09:00-13:00"},
			unavailable: []domain.UnavailableSlot{{StartTime: 600, EndTime: 630}}, want: true,
		},
		{name: "crossing shift evening", slot: minutes(23, 30), duration: 60, ranges: []string{"22:00-02:00"}, want: true},
		{name: "crossing shift night", slot: minutes(1, 0), duration: 60, ranges: []string{"22:00-02:00"}, want: true},
		{name: "crossing shift night runs past end", slot: minutes(1, 30), duration: 60, ranges: []string{"22:00-02:00"}, want: false},
		{name: "shift ending at midnight", slot: minutes(23, 30), duration: 30, ranges: []string{"22:00-00:00"}, want: true},
		{name: "boundary slot of shift ending at midnight", slot: 0, duration: 30, ranges: []string{"22:00-00:00"}, want: false},
		{name: "service wraps past midnight of non-crossing shift", slot: minutes(23, 30), duration: 60, ranges: []string{"18:00-23:59"}, want: false},
		{
			name: "night slot overlaps evening booking running past midnight", slot: 0, duration: 30, ranges: []string{"22:00-02:00"},
			unavailable: []domain.UnavailableSlot{{StartTime: minutes(23, 30), EndTime: minutes(24, 30)}}, want: false,
		},
		{
			name: "evening slot overlaps night booking", slot: minutes(23, 30), duration: 60, ranges: []string{"22:00-02:00"},
			unavailable: []domain.UnavailableSlot{{StartTime: 0, EndTime: 30}}, want: false,
		},
	}

	checker := newTestChecker(now)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsSlotAvailable(tt.slot, tt.unavailable, futureDate, tt.duration, tt.ranges)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSlotAvailable_LeadTime(t *testing.T) {
	today := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)
	checker := newTestChecker(today.Add(10 * time.Hour))
	ranges := []string{"09:00-18:00"}

	assert.False(t, checker.IsSlotAvailable(minutes(9, 30), nil, today, 30, ranges), "in the past")
	assert.False(t, checker.IsSlotAvailable(minutes(10, 0), nil, today, 30, ranges), "inside 15 minute buffer")
	assert.True(t, checker.IsSlotAvailable(minutes(10, 30), nil, today, 30, ranges))

	// та же дата, но смотрим с предыдущего дня - буфер не применяется
	yesterday := newTestChecker(today.Add(-2 * time.Hour))
	assert.True(t, yesterday.IsSlotAvailable(minutes(9, 30), nil, today, 30, ranges))
}

func TestIsSlotAvailable_LeadTimeNightTail(t *testing.T) {
	today := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)
	checker := newTestChecker(today.Add(23 * time.Hour))
	ranges := []string{"22:00-02:00"}

	assert.False(t, checker.IsSlotAvailable(minutes(23, 0), nil, today, 30, ranges))
	assert.True(t, checker.IsSlotAvailable(minutes(23, 30), nil, today, 30, ranges))
	assert.True(t, checker.IsSlotAvailable(minutes(1, 0), nil, today, 30, ranges), "night tail belongs to tomorrow")
}

func TestIsEmployeeAvailable(t *testing.T) {
	checker := newTestChecker(futureDate.AddDate(0, 0, -1))
	employee := &domain.Employee{
		ID: 1,
		WorkingHours: domain.WorkingHours{
			"monday":  {"09:00-13:00"},
			"tuesday": {},
		},
		OffDays: []string{"2030-06-17"},
	}

	assert.True(t, checker.IsEmployeeAvailable(employee, futureDate))
	assert.False(t, checker.IsEmployeeAvailable(employee, futureDate.AddDate(0, 0, 1)), "empty day")
	assert.False(t, checker.IsEmployeeAvailable(employee, futureDate.AddDate(0, 0, 2)), "no entry")
	assert.False(t, checker.IsEmployeeAvailable(employee, futureDate.AddDate(0, 0, 7)), "off day")
	assert.False(t, checker.IsEmployeeAvailable(nil, futureDate))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2030, 6, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInPast(now.AddDate(0, 0, -1), now))
	assert.False(t, IsDateInPast(time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsDateInPast(now.AddDate(0, 0, 1), now))
}

func TestStartOfDay(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	checker := newTestChecker(time.Date(2030, 6, 10, 1, 0, 0, 0, moscow))

	got := checker.StartOfDay(time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2030, 6, 10, 0, 0, 0, 0, moscow), got)
	assert.True(t, IsSameDay(got, checker.Now()))
}
