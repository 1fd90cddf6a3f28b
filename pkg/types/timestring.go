package types

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

// TimeString время суток в формате "HH:MM" (например, "08:30").
// Хранится как строка, поэтому напрямую сканируется из БД и сравнивается
// лексикографически (нулевые ведущие цифры делают порядок корректным).
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM", часы 00-23, минуты 00-59
func (t TimeString) Validate() error {
	_, err := t.minutesOfDay()
	if err != nil {
		return err
	}
	if t > "23:59" {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// AddMinutes возвращает время через delta минут.
// Результат может быть ровно "24:00" (конец суток); выход за полночь - ошибка.
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	total, err := t.minutesOfDay()
	if err != nil {
		return "", err
	}
	total += delta
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q +%dm is out of day range", ErrInvalidTimeString, string(t), delta)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// minutesOfDay парсит "HH:MM" в минуты от начала суток.
// Принимает "24:00" как конец суток, чтобы границы окон сравнивались корректно.
func (t TimeString) minutesOfDay() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	hh, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	mm, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hh < 0 || hh > 24 || mm < 0 || mm > 59 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return hh*60 + mm, nil
}
