package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
	minutesHour = 60
)

// Clock is a time of day with minute precision and no date.
// Edit sessions keep shift bounds as Clock values and resolve them to
// absolute instants only when writing to the server.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM value.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustClock is like ParseClock but panics on invalid input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ClockOf returns the time of day of t in loc.
func ClockOf(t time.Time, loc *time.Location) Clock {
	lt := t.In(loc)
	return Clock{Hour: lt.Hour(), Minute: lt.Minute()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On resolves c on the calendar day of date in loc.
// The result is in UTC.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, loc).UTC()
}

func (c Clock) minutes() int {
	return c.Hour*minutesHour + c.Minute
}

// HoursBetween returns the shift length in hours rounded to hundredths.
// Shifts never wrap midnight: if end is not after start the result is 0.
func HoursBetween(start, end Clock) float64 {
	diff := end.minutes() - start.minutes()
	if diff <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(diff)).
		Div(decimal.NewFromInt(minutesHour)).
		Round(2).
		InexactFloat64()
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// DateIn returns the calendar day of t in loc as midnight UTC.
func DateIn(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}
