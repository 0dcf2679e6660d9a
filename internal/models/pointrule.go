package models

import (
	"time"

	"github.com/google/uuid"
)

// PointRule maps an activity type and an inclusive position range to a point
// value for one alliance. Ranges for the same activity type must never overlap.
type PointRule struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AllianceID   uuid.UUID `json:"alliance_id" db:"alliance_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	PositionMin  int       `json:"position_min" db:"position_min"`
	PositionMax  int       `json:"position_max" db:"position_max"`
	Points       int       `json:"points" db:"points"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreatePointRuleRequest is the payload to create a rule
type CreatePointRuleRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
	PositionMin  int    `json:"position_min" binding:"required,min=1"`
	PositionMax  int    `json:"position_max" binding:"required,min=1"`
	Points       *int   `json:"points" binding:"required,min=0"`
}

// UpdatePointRuleRequest is the payload to update a rule. Nil fields keep
// their current value.
type UpdatePointRuleRequest struct {
	PositionMin *int `json:"position_min" binding:"omitempty,min=1"`
	PositionMax *int `json:"position_max" binding:"omitempty,min=1"`
	Points      *int `json:"points" binding:"omitempty,min=0"`
}
