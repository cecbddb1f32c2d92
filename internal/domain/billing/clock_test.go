package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Clock
		wantErr bool
	}{
		{name: "morning", in: "09:00", want: Clock{Hour: 9}},
		{name: "afternoon with minutes", in: "17:45", want: Clock{Hour: 17, Minute: 45}},
		{name: "surrounding spaces", in: " 08:15 ", want: Clock{Hour: 8, Minute: 15}},
		{name: "hour out of range", in: "25:00", wantErr: true},
		{name: "garbage", in: "noon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       float64
	}{
		{name: "full day", start: "09:00", end: "17:00", want: 8},
		{name: "half hour", start: "09:00", end: "17:30", want: 8.5},
		{name: "third of an hour rounds down", start: "09:00", end: "09:20", want: 0.33},
		{name: "two thirds of an hour rounds up", start: "09:00", end: "09:40", want: 0.67},
		{name: "zero duration", start: "10:00", end: "10:00", want: 0},
		{name: "end before start does not wrap", start: "22:00", end: "02:00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoursBetween(MustClock(tt.start), MustClock(tt.end)))
		})
	}
}

func TestClock_OnAndClockOf(t *testing.T) {
	pst := time.FixedZone("PST", -8*60*60)
	date, err := ParseDate("2026-01-15")
	require.NoError(t, err)

	at := MustClock("09:30").On(date, pst)
	assert.Equal(t, time.Date(2026, 1, 15, 17, 30, 0, 0, time.UTC), at)
	assert.Equal(t, time.UTC, at.Location())

	assert.Equal(t, MustClock("09:30"), ClockOf(at, pst))
	assert.Equal(t, "09:30", ClockOf(at, pst).String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2026-02-03", FormatDate(d))

	_, err = ParseDate("03/02/2026")
	require.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, FormatDate(time.Time{}))
}

func TestDateOf(t *testing.T) {
	at := time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), DateOf(at))
}
