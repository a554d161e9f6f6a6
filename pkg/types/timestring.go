package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeFormat формат времени HH:MM
const timeFormat = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrInvalidMinutes возвращается при некорректном количестве минут
	ErrInvalidMinutes = errors.New("invalid minutes value")
)

// TimeString время в формате "HH:MM" (без даты и часового пояса)
type TimeString string

// NewTimeString создает TimeString из time.Time (берет только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// ToTime парсит TimeString в time.Time (дата 0000-01-01)
func (t TimeString) ToTime() (time.Time, error) {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return parsed, nil
}

// AddMinutes возвращает новый TimeString со смещением на minutes минут вперед.
// Переход через полночь не поддерживается — возвращается ошибка.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if minutes < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMinutes, minutes)
	}

	parsed, err := t.ToTime()
	if err != nil {
		return "", err
	}

	shifted := parsed.Add(time.Duration(minutes) * time.Minute)
	if shifted.Day() != parsed.Day() {
		return "", fmt.Errorf("%w: %s + %d minutes crosses midnight", ErrInvalidMinutes, t, minutes)
	}

	return NewTimeString(shifted), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}

	// Postgres TIME может вернуть "10:00:00" — нормализуем к HH:MM
	if len(*t) == 8 {
		*t = (*t)[:5]
	}

	return t.Validate()
}
