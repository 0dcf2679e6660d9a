package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleMember     = "member"
)

// UserPreferences is stored as JSONB on the user profile
type UserPreferences struct {
	Language string `json:"language,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

// User is a member profile. AllianceID is nil only for super admins.
type User struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	AllianceID        *uuid.UUID       `json:"alliance_id,omitempty" db:"alliance_id"`
	InvitationTokenID *uuid.UUID       `json:"invitation_token_id,omitempty" db:"invitation_token_id"`
	Username          string           `json:"username" db:"username"`
	DisplayName       string           `json:"display_name" db:"display_name"`
	Role              string           `json:"role" db:"role"`
	Preferences       *UserPreferences `json:"preferences,omitempty" db:"preferences"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user can manage the alliance
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// UserListResponse is the simplified response for member lists
type UserListResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToListResponse converts User to UserListResponse
func (u *User) ToListResponse() UserListResponse {
	return UserListResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// UpdatePreferencesRequest is the payload to update a user's own preferences
type UpdatePreferencesRequest struct {
	Language *string `json:"language" binding:"omitempty,oneof=en fr es it"`
	Theme    *string `json:"theme" binding:"omitempty,oneof=light dark"`
}

// UpdateMemberRoleRequest is the payload for an admin changing a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}
