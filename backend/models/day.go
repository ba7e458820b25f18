package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// CalendarDay is a date without a time of day. All streak and window math
// goes through it instead of comparing timestamps or formatted strings.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day t falls on in loc.
func DayOf(t time.Time, loc *time.Location) CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

func NewCalendarDay(year int, month time.Month, day int) CalendarDay {
	return dayFromUTC(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func ParseCalendarDay(s string) (CalendarDay, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("invalid calendar day %q: %w", s, err)
	}
	return dayFromUTC(t), nil
}

func dayFromUTC(t time.Time) CalendarDay {
	y, m, d := t.Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// midnightUTC is only used for arithmetic. UTC has no DST so every day is 24h.
func (d CalendarDay) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDay) AddDays(n int) CalendarDay {
	return dayFromUTC(d.midnightUTC().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d CalendarDay) DaysUntil(other CalendarDay) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()).Hours() / 24)
}

func (d CalendarDay) Before(other CalendarDay) bool { return d.DaysUntil(other) > 0 }
func (d CalendarDay) After(other CalendarDay) bool  { return d.DaysUntil(other) < 0 }
func (d CalendarDay) IsZero() bool                  { return d == CalendarDay{} }

// Start returns the first instant of the day in loc.
func (d CalendarDay) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CalendarDay) String() string {
	if d.IsZero() {
		return ""
	}
	return d.midnightUTC().Format(dayLayout)
}

func (CalendarDay) GormDataType() string {
	return "date"
}

func (d CalendarDay) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *CalendarDay) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = CalendarDay{}
		return nil
	case time.Time:
		// drivers hand back midnight of the stored date; keep its wall-clock date
		*d = CalendarDay{Year: v.Year(), Month: v.Month(), Day: v.Day()}
		return nil
	case string:
		return d.parsePrefix(v)
	case []byte:
		return d.parsePrefix(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CalendarDay", value)
	}
}

func (d *CalendarDay) parsePrefix(s string) error {
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	parsed, err := ParseCalendarDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CalendarDay) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *CalendarDay) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = CalendarDay{}
		return nil
	}
	parsed, err := ParseCalendarDay(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
