package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/scoring"
)

// ListActivities returns the alliance's activity history, newest first
func ListActivities(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	allianceID, _ := middleware.GetAuthAllianceID(c)

	query := `
		SELECT
			a.id, a.alliance_id, a.user_id, u.display_name, a.activity_type,
			a.position, a.points, a.date, a.created_at
		FROM activities a
		JOIN user_profiles u ON u.id = a.user_id
		WHERE a.alliance_id = $1
		ORDER BY a.date DESC, a.created_at DESC
	`

	rows, err := db.Query(c.Request.Context(), query, allianceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query activities"})
		return
	}
	defer rows.Close()

	activities := []models.ActivityResponse{}
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
		activities = append(activities, a.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// CreateActivity records an activity for the authenticated member. The point
// value is resolved once, here, from the alliance's current rules; later rule
// changes never touch stored activities.
func CreateActivity(engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)
		userID, _ := middleware.GetAuthUserID(c)

		var req models.CreateActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if scoring.DefaultPoints(req.ActivityType) == 0 && !hasRuleForType(c, engine, allianceID, req.ActivityType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown activity type"})
			return
		}

		result := engine.CalculatePoints(c.Request.Context(), allianceID, req.ActivityType, req.Position)

		activity, err := insertActivity(c, allianceID, userID, req.ActivityType, req.Position, result.Points, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity"})
			return
		}

		var displayName string
		if err := db.QueryRow(c.Request.Context(),
			`SELECT display_name FROM user_profiles WHERE id = $1`, userID,
		).Scan(&displayName); err == nil {
			activity.UserName = displayName
		}

		response := activity.ToResponse()
		response.UsedFallback = result.UsedFallback
		c.JSON(http.StatusCreated, response)
	}
}

// CreateMemberActivity records an activity on behalf of a member, optionally
// for a past week of the six-week window. The activity is dated on the Sunday
// of the selected week.
func CreateMemberActivity(engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)

		memberID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
			return
		}

		var req models.CreateMemberActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.WeeksAgo < 0 || req.WeeksAgo >= scoring.WeeksToTrack {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weeks_ago must be between 0 and 5"})
			return
		}

		// The member must belong to the admin's alliance.
		var displayName string
		err = db.QueryRow(c.Request.Context(),
			`SELECT display_name FROM user_profiles WHERE id = $1 AND alliance_id = $2`,
			memberID, allianceID,
		).Scan(&displayName)
		if err != nil {
			if isNoRows(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query member"})
			}
			return
		}

		now := time.Now()
		date := now
		if req.WeeksAgo > 0 {
			date = scoring.DateForWeeksAgo(now, req.WeeksAgo)
		}

		result := engine.CalculatePoints(c.Request.Context(), allianceID, req.ActivityType, req.Position)

		activity, err := insertActivity(c, allianceID, memberID, req.ActivityType, req.Position, result.Points, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activity"})
			return
		}
		activity.UserName = displayName

		response := activity.ToResponse()
		response.UsedFallback = result.UsedFallback
		c.JSON(http.StatusCreated, response)
	}
}

// ResetActivities deletes the whole alliance's activity history
func ResetActivities(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	allianceID, _ := middleware.GetAuthAllianceID(c)

	result, err := db.Exec(c.Request.Context(),
		`DELETE FROM activities WHERE alliance_id = $1`, allianceID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset activities"})
		return
	}

	logger.L.Info("alliance activities reset",
		zap.String("alliance_id", allianceID.String()),
		zap.Int64("deleted", result.RowsAffected()))

	c.JSON(http.StatusOK, gin.H{
		"deleted": result.RowsAffected(),
		"message": "All activities deleted",
	})
}

func insertActivity(c *gin.Context, allianceID, userID uuid.UUID, activityType string, position, points int, date time.Time) (*models.Activity, error) {
	db, _ := middleware.GetDB(c)

	activity := &models.Activity{
		ID:           uuid.New(),
		AllianceID:   allianceID,
		UserID:       userID,
		ActivityType: activityType,
		Position:     position,
		Points:       points,
		Date:         date,
	}

	err := db.QueryRow(c.Request.Context(), `
		INSERT INTO activities (id, alliance_id, user_id, activity_type, position, points, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`, activity.ID, allianceID, userID, activityType, position, points, date).Scan(&activity.CreatedAt)
	if err != nil {
		return nil, err
	}

	return activity, nil
}

func hasRuleForType(c *gin.Context, engine *scoring.Engine, allianceID uuid.UUID, activityType string) bool {
	for _, r := range engine.Rules(c.Request.Context(), allianceID) {
		if r.ActivityType == activityType {
			return true
		}
	}
	return false
}
