package models

import (
	"time"

	"github.com/google/uuid"
)

// WeeklyScore is a derived aggregate: one user's total points within one
// calendar week (Sunday 00:00:00.000 through Saturday 23:59:59.999).
type WeeklyScore struct {
	WeekStart   time.Time  `json:"week_start"`
	WeekEnd     time.Time  `json:"week_end"`
	TotalPoints int        `json:"total_points"`
	Activities  []Activity `json:"activities"`
}

// UserScore is one user's six most recent weekly buckets plus summary stats,
// ordered oldest week first.
type UserScore struct {
	UserID       uuid.UUID     `json:"user_id"`
	UserName     string        `json:"user_name"`
	WeeklyScores []WeeklyScore `json:"weekly_scores"`
	SixWeekTotal int           `json:"six_week_total"`
	// AverageWeekly is always SixWeekTotal / 6, even for users whose earliest
	// activity is more recent than six weeks.
	AverageWeekly float64 `json:"average_weekly"`
}

// ScoreboardResponse is the API response for the leaderboard
type ScoreboardResponse struct {
	Scores     []UserScore `json:"scores"`
	TotalUsers int         `json:"total_users"`
	AsOf       time.Time   `json:"as_of"`
}
