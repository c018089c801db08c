package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60

	// afterMidnightBoundary всё, что раньше полудня, считается "после полуночи"
	afterMidnightBoundary = 12 * 60
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrInvalidTimeRange возвращается, когда строка не соответствует формату HH:MM-HH:MM
	ErrInvalidTimeRange = errors.New("types: invalid time range, expected HH:MM-HH:MM")
)

// TimeOfDay время суток в минутах от полуночи, диапазон [0, 1440).
// Создаётся один раз на границе системы через ParseTimeOfDay,
// дальше по коду передаётся только проверенное значение.
type TimeOfDay int

// ParseTimeOfDay разбирает строку "HH:MM" (24-часовой формат)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	// Postgres отдаёт колонки TIME как "HH:MM:SS" - секунды отбрасываем
	if len(s) == 8 && s[5] == ':' {
		s = s[:5]
	}

	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(s[:2])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	minutes, err := strconv.Atoi(s[3:])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// MustParseTimeOfDay как ParseTimeOfDay, но паникует на некорректном вводе.
// Только для констант и тестов.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String форматирует время как "HH:MM"
func (t TimeOfDay) String() string {
	return MinutesToTime(int(t))
}

// IsAfterMidnight true для 00:00-11:59
func (t TimeOfDay) IsAfterMidnight() bool {
	return t.Minutes() >= 0 && t.Minutes() < afterMidnightBoundary
}

// AddMinutes прибавляет минуты с переходом через полночь
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return TimeOfDay(wrap(int(t) + minutes))
}

// IsBefore true, если t раньше other в пределах одних суток
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter true, если t позже other в пределах одних суток
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// Scan implements sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case int64:
		if v < 0 || v >= MinutesPerDay {
			return fmt.Errorf("%w: %d minutes", ErrInvalidTimeFormat, v)
		}
		*t = TimeOfDay(v)
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeOfDay", src)
	}
}

// Value implements driver.Valuer
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// MarshalJSON implements json.Marshaler
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeToMinutes переводит "HH:MM" в минуты от полуночи
func TimeToMinutes(s string) (int, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return 0, err
	}
	return t.Minutes(), nil
}

// MinutesToTime переводит минуты от полуночи в "HH:MM".
// Значения вне [0, 1440) заворачиваются по модулю суток.
func MinutesToTime(minutes int) string {
	m := wrap(minutes)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// IsAfterMidnight true, если час строки "HH:MM" в диапазоне [0, 12).
// Для некорректной строки возвращает false.
func IsAfterMidnight(s string) bool {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return false
	}
	return t.IsAfterMidnight()
}

// CrossesMidnight true, если конец диапазона строго раньше начала.
// Для некорректных строк возвращает false.
func CrossesMidnight(start, end string) bool {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return false
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return false
	}
	return e < s
}

func wrap(minutes int) int {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}
