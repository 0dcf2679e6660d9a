package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/scoring"
)

// ListActivityTypes returns the activity types available for a given week of
// the six-week cycle. With no weeks_ago parameter the current week is used.
func ListActivityTypes(c *gin.Context) {
	now := time.Now()

	weeksAgo := 0
	if raw := c.Query("weeks_ago"); raw != "" {
		var err error
		weeksAgo, err = strconv.Atoi(raw)
		if err != nil || weeksAgo < 0 || weeksAgo >= scoring.WeeksToTrack {
			c.JSON(http.StatusBadRequest, gin.H{"error": "weeks_ago must be between 0 and 5"})
			return
		}
	}

	weekNumber := scoring.WeekNumberForWeeksAgo(now, weeksAgo)

	types := []models.ActivityTypeResponse{}
	for _, at := range scoring.AvailableTypes(weekNumber) {
		types = append(types, models.ActivityTypeResponse{
			Value:          at.Value,
			Label:          at.Label,
			Points:         at.Points,
			AvailableWeeks: at.AvailableWeeks,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"week_number":    weekNumber,
		"activity_types": types,
	})
}

// ListWeekOptions returns the six selectable weeks for retroactive entry,
// most recent first, each with its cycle week number and date bounds.
func ListWeekOptions(c *gin.Context) {
	now := time.Now()

	options := []models.WeekOption{}
	for weeksAgo := 0; weeksAgo < scoring.WeeksToTrack; weeksAgo++ {
		start := scoring.DateForWeeksAgo(now, weeksAgo)
		options = append(options, models.WeekOption{
			WeeksAgo:   weeksAgo,
			WeekNumber: scoring.WeekNumberForWeeksAgo(now, weeksAgo),
			WeekStart:  start.Format("2006-01-02"),
			WeekEnd:    scoring.WeekEnd(start).Format("2006-01-02"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"current_week": scoring.CurrentWeekNumber(now),
		"weeks":        options,
	})
}
