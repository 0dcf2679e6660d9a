package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	// Wednesday 2026-02-11 belongs to the week starting Sunday 2026-02-08.
	start := WeekStart(date(2026, time.February, 11))
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC), start)

	// A Sunday is its own week start.
	start = WeekStart(date(2026, time.February, 8))
	assert.Equal(t, time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC), start)
}

func TestWeekEnd(t *testing.T) {
	end := WeekEnd(date(2026, time.February, 11))
	assert.Equal(t, time.Saturday, end.Weekday())
	assert.Equal(t, time.Date(2026, time.February, 14, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestCurrentWeekNumber(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"reference date is week 1", date(2026, time.January, 25), 1},
		{"two weeks after reference", date(2026, time.February, 9), 3},
		{"sixth week of cycle", date(2026, time.March, 1), 6},
		{"cycle wraps back to week 1", date(2026, time.March, 8), 1},
		{"before the reference still cycles", date(2026, time.January, 18), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentWeekNumber(tt.now))
		})
	}
}

func TestWeekNumberForWeeksAgo(t *testing.T) {
	// Current week 3: one week ago was week 2.
	now := date(2026, time.February, 9)
	assert.Equal(t, 3, WeekNumberForWeeksAgo(now, 0))
	assert.Equal(t, 2, WeekNumberForWeeksAgo(now, 1))

	// Wrapping across the cycle boundary: current week 2, one week ago week 1,
	// two weeks ago week 6 of the previous cycle.
	now = date(2026, time.February, 1)
	assert.Equal(t, 1, WeekNumberForWeeksAgo(now, 1))
	assert.Equal(t, 6, WeekNumberForWeeksAgo(now, 2))
}

func TestDateForWeeksAgo(t *testing.T) {
	now := date(2026, time.February, 11)

	for weeksAgo := 0; weeksAgo <= 5; weeksAgo++ {
		result := DateForWeeksAgo(now, weeksAgo)
		assert.Equal(t, time.Sunday, result.Weekday())
		assert.Equal(t, WeekStart(now).AddDate(0, 0, -7*weeksAgo), result)
	}
}
