package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillomef06/activity-tracker/internal/models"
)

// Friday 2026-02-13; the surrounding week runs Sunday Feb 8 - Saturday Feb 14.
var testNow = time.Date(2026, time.February, 13, 17, 30, 0, 0, time.UTC)

func activity(userID uuid.UUID, userName string, points int, date time.Time) models.Activity {
	return models.Activity{
		ID:           uuid.New(),
		UserID:       userID,
		UserName:     userName,
		ActivityType: "legion",
		Position:     1,
		Points:       points,
		Date:         date,
	}
}

func TestWeeklyScores_AlwaysSixBuckets(t *testing.T) {
	weeks := WeeklyScores(nil, testNow)
	require.Len(t, weeks, 6)

	for i, week := range weeks {
		assert.Equal(t, 0, week.TotalPoints)
		assert.Empty(t, week.Activities)
		assert.Equal(t, time.Sunday, week.WeekStart.Weekday())
		assert.Equal(t, time.Saturday, week.WeekEnd.Weekday())
		if i > 0 {
			assert.Equal(t, weeks[i-1].WeekStart.AddDate(0, 0, 7), week.WeekStart, "weeks must be chronological")
		}
	}

	// The last bucket is the week containing now.
	last := weeks[5]
	assert.Equal(t, time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC), last.WeekStart)
	assert.Equal(t, time.Date(2026, time.February, 14, 23, 59, 59, 999_000_000, time.UTC), last.WeekEnd)
}

func TestWeeklyScores_BucketBoundariesInclusive(t *testing.T) {
	userID := uuid.New()
	activities := []models.Activity{
		activity(userID, "A", 5, time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC)),             // Sunday 00:00
		activity(userID, "A", 7, time.Date(2026, time.February, 14, 23, 59, 59, 999_000_000, time.UTC)), // Saturday end
		activity(userID, "A", 9, time.Date(2026, time.February, 7, 23, 59, 59, 999_000_000, time.UTC)),  // previous week
	}

	weeks := WeeklyScores(activities, testNow)
	require.Len(t, weeks, 6)
	assert.Equal(t, 12, weeks[5].TotalPoints)
	assert.Equal(t, 9, weeks[4].TotalPoints)
}

func TestUserScores_RecencyBoundary(t *testing.T) {
	onBoundary := uuid.New()
	tooOld := uuid.New()

	activities := []models.Activity{
		activity(onBoundary, "OnBoundary", 10, testNow.AddDate(0, 0, -42)),
		activity(tooOld, "TooOld", 10, testNow.AddDate(0, 0, -43)),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 1)
	assert.Equal(t, onBoundary, scores[0].UserID)
}

func TestUserScores_FutureDatesNotExcluded(t *testing.T) {
	userID := uuid.New()
	activities := []models.Activity{
		// Saturday of the current week, a day after now.
		activity(userID, "A", 6, testNow.AddDate(0, 0, 1)),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 1)
	assert.Equal(t, 6, scores[0].SixWeekTotal)
	assert.Equal(t, 6, scores[0].WeeklyScores[5].TotalPoints)
}

func TestUserScores_LeaderboardOrdering(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	activities := []models.Activity{
		activity(a, "A", 100, testNow),
		activity(b, "B", 250, testNow),
		activity(c, "C", 40, testNow),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{250, 100, 40}, []int{scores[0].SixWeekTotal, scores[1].SixWeekTotal, scores[2].SixWeekTotal})
	assert.Equal(t, "B", scores[0].UserName)
}

func TestUserScores_TiesKeepDiscoveryOrder(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	activities := []models.Activity{
		activity(first, "First", 30, testNow),
		activity(second, "Second", 30, testNow),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 2)
	assert.Equal(t, first, scores[0].UserID)
	assert.Equal(t, second, scores[1].UserID)
}

func TestUserScores_FirstUserNameWins(t *testing.T) {
	userID := uuid.New()
	activities := []models.Activity{
		activity(userID, "Old Name", 5, testNow.AddDate(0, 0, -1)),
		activity(userID, "New Name", 5, testNow),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 1)
	assert.Equal(t, "Old Name", scores[0].UserName)
}

func TestUserScores_AverageAlwaysDividesBySix(t *testing.T) {
	userID := uuid.New()
	activities := []models.Activity{
		activity(userID, "A", 12, testNow),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 1)
	assert.Equal(t, 12, scores[0].SixWeekTotal)
	assert.Equal(t, float64(12)/6, scores[0].AverageWeekly)
}

func TestUserScores_EmptyInput(t *testing.T) {
	assert.Empty(t, UserScores(nil, testNow))
}

func TestUserScores_TwoWeekExample(t *testing.T) {
	userID := uuid.New()
	thisMonday := time.Date(2026, time.February, 9, 12, 0, 0, 0, time.UTC)

	activities := []models.Activity{
		activity(userID, "A", 8, thisMonday),
		activity(userID, "A", 8, thisMonday.AddDate(0, 0, -7)),
	}

	scores := UserScores(activities, testNow)
	require.Len(t, scores, 1)

	score := scores[0]
	assert.Equal(t, 16, score.SixWeekTotal)
	assert.Equal(t, float64(16)/6, score.AverageWeekly)
	assert.InDelta(t, 2.666, score.AverageWeekly, 0.001)

	require.Len(t, score.WeeklyScores, 6)
	for i, week := range score.WeeklyScores {
		if i >= 4 {
			assert.Equal(t, 8, week.TotalPoints, "week %d", i)
			assert.Len(t, week.Activities, 1)
		} else {
			assert.Equal(t, 0, week.TotalPoints, "week %d", i)
		}
	}
}
