package services

import (
	"time"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
)

// Clock is the single source of "today". Every service gets the same one so
// accumulation, streaks and leaderboard windows agree on the calendar day.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	return NewClockFunc(time.Now, loc)
}

func NewClockFunc(now func() time.Time, loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{now: now, loc: loc}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Clock) Today() models.CalendarDay {
	return models.DayOf(c.Now(), c.Location())
}
