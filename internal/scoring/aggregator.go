package scoring

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/guillomef06/activity-tracker/internal/models"
)

// UserScores turns a flat activity history into per-user leaderboard data as
// of now. Activities dated more than 42 days before now are ignored (the
// 42-day boundary itself is included; future dates are not filtered).
// Activities are grouped by user in discovery order, with the first record's
// user name winning, and the result is sorted by six-week total descending.
// Ties keep discovery order. Users with no qualifying activity do not appear.
func UserScores(activities []models.Activity, now time.Time) []models.UserScore {
	cutoff := now.AddDate(0, 0, -7*WeeksToTrack)

	grouped := make(map[uuid.UUID][]models.Activity)
	order := []uuid.UUID{}
	names := make(map[uuid.UUID]string)

	for _, a := range activities {
		if a.Date.Before(cutoff) {
			continue
		}
		if _, seen := grouped[a.UserID]; !seen {
			order = append(order, a.UserID)
			names[a.UserID] = a.UserName
		}
		grouped[a.UserID] = append(grouped[a.UserID], a)
	}

	scores := make([]models.UserScore, 0, len(order))
	for _, userID := range order {
		weekly := WeeklyScores(grouped[userID], now)

		total := 0
		for _, week := range weekly {
			total += week.TotalPoints
		}

		scores = append(scores, models.UserScore{
			UserID:       userID,
			UserName:     names[userID],
			WeeklyScores: weekly,
			SixWeekTotal: total,
			// Always divided by the full window so that empty weeks pull the
			// average down, including for users newer than six weeks.
			AverageWeekly: float64(total) / WeeksToTrack,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].SixWeekTotal > scores[j].SixWeekTotal
	})

	return scores
}

// WeeklyScores buckets one user's activities into exactly six calendar weeks
// (Sunday through Saturday), ending with the week containing now. The result
// is ordered oldest week first. Weeks without activity have a zero total.
func WeeklyScores(userActivities []models.Activity, now time.Time) []models.WeeklyScore {
	weeks := make([]models.WeeklyScore, 0, WeeksToTrack)

	for i := WeeksToTrack - 1; i >= 0; i-- {
		weekStart := WeekStart(now).AddDate(0, 0, -7*i)
		weekEnd := WeekEnd(weekStart)

		weekActivities := []models.Activity{}
		totalPoints := 0
		for _, a := range userActivities {
			if a.Date.Before(weekStart) || a.Date.After(weekEnd) {
				continue
			}
			weekActivities = append(weekActivities, a)
			totalPoints += a.Points
		}

		weeks = append(weeks, models.WeeklyScore{
			WeekStart:   weekStart,
			WeekEnd:     weekEnd,
			TotalPoints: totalPoints,
			Activities:  weekActivities,
		})
	}

	return weeks
}
