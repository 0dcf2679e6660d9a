package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationToken lets a new member join an alliance. Tokens are multi-use
// until they expire; revoking a token sets its expiry to the current time.
type InvitationToken struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	AllianceID uuid.UUID  `json:"alliance_id" db:"alliance_id"`
	Token      string     `json:"token" db:"token"`
	ExpiresAt  time.Time  `json:"expires_at" db:"expires_at"`
	UsedAt     *time.Time `json:"used_at,omitempty" db:"used_at"`
	UsedBy     *uuid.UUID `json:"used_by,omitempty" db:"used_by"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// InvitationWithStats adds usage counts for the admin invitation list
type InvitationWithStats struct {
	InvitationToken
	JoinCount int `json:"join_count"`
}

// CreateInvitationRequest is the payload to create an invitation
type CreateInvitationRequest struct {
	ExpiresInDays int `json:"expires_in_days" binding:"omitempty,min=1,max=365"`
}

// CreateInvitationResponse returns the generated token
type CreateInvitationResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ValidateInvitationResponse is the public token validation result
type ValidateInvitationResponse struct {
	Valid        bool   `json:"valid"`
	AllianceName string `json:"alliance_name,omitempty"`
	Error        string `json:"error,omitempty"`
}
