package models

import (
	"time"

	"github.com/google/uuid"
)

// Alliance is the tenant grouping that owns its members, activities and
// point rules.
type Alliance struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty" db:"owner_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// AllianceWithStats adds aggregate counts for dashboard views
type AllianceWithStats struct {
	Alliance
	MemberCount     int `json:"member_count"`
	TotalActivities int `json:"total_activities"`
}

// UpdateAllianceRequest is the payload to rename an alliance
type UpdateAllianceRequest struct {
	Name string `json:"name" binding:"required"`
}
