package scoring

import (
	"math"
	"time"
)

// WeeksToTrack is the size of the rolling leaderboard window and of the
// repeating activity-availability cycle.
const WeeksToTrack = 6

// WeekStart returns the Sunday 00:00:00.000 on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	start := t.AddDate(0, 0, -int(t.Weekday()))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEnd returns the Saturday 23:59:59.999 on or after t, in t's location.
func WeekEnd(t time.Time) time.Time {
	end := t.AddDate(0, 0, 6-int(t.Weekday()))
	return time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// CurrentWeekNumber returns the position of now's week in the six-week
// cycle, in 1..6. Sunday 2026-01-25 anchors week 1; week numbers repeat
// every six weeks in both directions.
func CurrentWeekNumber(now time.Time) int {
	ref := time.Date(2026, time.January, 25, 0, 0, 0, 0, now.Location())
	elapsed := WeekStart(now).Sub(ref)
	weeks := int(math.Round(elapsed.Hours() / (24 * 7)))
	return ((weeks%WeeksToTrack)+WeeksToTrack)%WeeksToTrack + 1
}

// WeekNumberForWeeksAgo returns the cycle week number of the week weeksAgo
// weeks before now, wrapping around the cycle.
func WeekNumberForWeeksAgo(now time.Time, weeksAgo int) int {
	current := CurrentWeekNumber(now)
	return ((current-1-weeksAgo)%WeeksToTrack+WeeksToTrack)%WeeksToTrack + 1
}

// DateForWeeksAgo returns the Sunday that starts the week weeksAgo weeks
// before now.
func DateForWeeksAgo(now time.Time, weeksAgo int) time.Time {
	return WeekStart(now).AddDate(0, 0, -7*weeksAgo)
}
