package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an immutable record of a member performing an activity.
// Points are resolved at creation time and never recomputed, even if the
// alliance's point rules change later.
type Activity struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AllianceID   uuid.UUID `json:"alliance_id" db:"alliance_id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	UserName     string    `json:"user_name" db:"user_name"` // denormalized display name
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Position     int       `json:"position" db:"position"`
	Points       int       `json:"points" db:"points"`
	Date         time.Time `json:"date" db:"date"` // the calendar date the activity counts toward
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CreateActivityRequest is the payload for a member submitting their own activity
type CreateActivityRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
	Position     int    `json:"position" binding:"required,min=1"`
}

// CreateMemberActivityRequest is the payload for an admin submitting an
// activity on behalf of a member, optionally for a past week (0 = current week)
type CreateMemberActivityRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
	Position     int    `json:"position" binding:"required,min=1"`
	WeeksAgo     int    `json:"weeks_ago"`
}

// ActivityResponse is the API response format for a single activity
type ActivityResponse struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	ActivityType string    `json:"activity_type"`
	Position     int       `json:"position"`
	Points       int       `json:"points"`
	UsedFallback bool      `json:"used_fallback,omitempty"`
	Date         string    `json:"date"`
	CreatedAt    string    `json:"created_at"`
}

// ToResponse converts Activity to ActivityResponse
func (a *Activity) ToResponse() ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		ActivityType: a.ActivityType,
		Position:     a.Position,
		Points:       a.Points,
		Date:         a.Date.Format("2006-01-02"),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}
