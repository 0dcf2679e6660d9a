package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
)

// ListUsers returns all members of the authenticated user's alliance
func ListUsers(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	allianceID, _ := middleware.GetAuthAllianceID(c)

	query := `
		SELECT id, username, display_name, role, created_at
		FROM user_profiles
		WHERE alliance_id = $1
		ORDER BY created_at ASC
	`

	rows, err := db.Query(c.Request.Context(), query, allianceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer rows.Close()

	users := []models.UserListResponse{}
	for rows.Next() {
		var user models.UserListResponse
		err := rows.Scan(&user.ID, &user.Username, &user.DisplayName, &user.Role, &user.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user data"})
			return
		}
		users = append(users, user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUser returns one member of the alliance by ID
func GetUser(c *gin.Context) {
	allianceID, _ := middleware.GetAuthAllianceID(c)

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := queryUser(c, userID)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
		}
		return
	}

	if user.AllianceID == nil || *user.AllianceID != allianceID {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetCurrentUser returns the authenticated user's own profile
func GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetAuthUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := queryUser(c, userID)
	if err != nil {
		if isNoRows(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePreferences updates the authenticated user's own preferences
func UpdatePreferences(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	userID, _ := middleware.GetAuthUserID(c)

	var req models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := queryUser(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query user"})
		return
	}

	prefs := user.Preferences
	if prefs == nil {
		prefs = &models.UserPreferences{}
	}
	if req.Language != nil {
		prefs.Language = *req.Language
	}
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode preferences"})
		return
	}

	_, err = db.Exec(c.Request.Context(),
		`UPDATE user_profiles SET preferences = $1, updated_at = NOW() WHERE id = $2`,
		raw, userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func queryUser(c *gin.Context, userID uuid.UUID) (*models.User, error) {
	db, _ := middleware.GetDB(c)

	query := `
		SELECT id, alliance_id, invitation_token_id, username, display_name, role, preferences, created_at, updated_at
		FROM user_profiles
		WHERE id = $1
	`

	var user models.User
	var rawPrefs []byte
	err := db.QueryRow(c.Request.Context(), query, userID).Scan(
		&user.ID, &user.AllianceID, &user.InvitationTokenID, &user.Username,
		&user.DisplayName, &user.Role, &rawPrefs, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rawPrefs) > 0 {
		var prefs models.UserPreferences
		if err := json.Unmarshal(rawPrefs, &prefs); err == nil {
			user.Preferences = &prefs
		}
	}

	return &user, nil
}
