package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/scoring"
)

// GetScores returns the alliance leaderboard: per-member weekly totals over
// the rolling six-week window, ordered by six-week total descending.
func GetScores(clock func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)

		query := `
			SELECT
				a.id, a.alliance_id, a.user_id, u.display_name, a.activity_type,
				a.position, a.points, a.date, a.created_at
			FROM activities a
			JOIN user_profiles u ON u.id = a.user_id
			WHERE a.alliance_id = $1
			ORDER BY a.created_at ASC
		`

		rows, err := db.Query(c.Request.Context(), query, allianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activities"})
			return
		}
		defer rows.Close()

		activities := []models.Activity{}
		for rows.Next() {
			var a models.Activity
			err := rows.Scan(
				&a.ID, &a.AllianceID, &a.UserID, &a.UserName, &a.ActivityType,
				&a.Position, &a.Points, &a.Date, &a.CreatedAt,
			)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse activity data"})
				return
			}
			activities = append(activities, a)
		}

		now := clock()
		scores := scoring.UserScores(activities, now)

		c.JSON(http.StatusOK, models.ScoreboardResponse{
			Scores:     scores,
			TotalUsers: len(scores),
			AsOf:       now,
		})
	}
}
