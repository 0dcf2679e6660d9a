package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/guillomef06/activity-tracker/internal/auth"
	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/repository"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string     `json:"token"`
	UserID      uuid.UUID  `json:"user_id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	AllianceID  *uuid.UUID `json:"alliance_id,omitempty"`
}

type RegisterAdminRequest struct {
	AllianceName string `json:"alliance_name" binding:"required"`
	Username     string `json:"username" binding:"required,min=3"`
	DisplayName  string `json:"display_name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
}

type JoinRequest struct {
	Token       string `json:"token" binding:"required"`
	Username    string `json:"username" binding:"required,min=3"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

// Login authenticates a user and returns a JWT token
func Login(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))

		query := `
			SELECT id, alliance_id, username, display_name, role, password_hash
			FROM user_profiles
			WHERE LOWER(username) = $1
		`

		var userID uuid.UUID
		var allianceID *uuid.UUID
		var dbUsername, displayName, role string
		var passwordHash *string

		err := db.QueryRow(c.Request.Context(), query, username).Scan(
			&userID, &allianceID, &dbUsername, &displayName, &role, &passwordHash,
		)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		if passwordHash == nil || *passwordHash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Password authentication not configured for this user"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token, err := jwtService.GenerateToken(userID, allianceID, dbUsername, role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:       token,
			UserID:      userID,
			Username:    dbUsername,
			DisplayName: displayName,
			Role:        role,
			AllianceID:  allianceID,
		})
	}
}

// RegisterAdmin creates a new alliance together with its first admin account
func RegisterAdmin(jwtService *auth.JWTService, alliances *repository.AllianceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)

		var req RegisterAdminRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))

		var exists bool
		err := db.QueryRow(c.Request.Context(),
			`SELECT EXISTS(SELECT 1 FROM user_profiles WHERE LOWER(username) = $1)`, username,
		).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		userID := uuid.New()
		alliance := &models.Alliance{Name: req.AllianceName, OwnerID: &userID}
		if err := alliances.Create(c.Request.Context(), alliance); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alliance"})
			return
		}

		_, err = db.Exec(c.Request.Context(), `
			INSERT INTO user_profiles (id, alliance_id, username, display_name, role, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		`, userID, alliance.ID, username, req.DisplayName, models.RoleAdmin, string(hash))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user profile"})
			return
		}

		logger.L.Info("alliance registered",
			zap.String("alliance_id", alliance.ID.String()),
			zap.String("username", username))

		token, err := jwtService.GenerateToken(userID, &alliance.ID, username, models.RoleAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, LoginResponse{
			Token:       token,
			UserID:      userID,
			Username:    username,
			DisplayName: req.DisplayName,
			Role:        models.RoleAdmin,
			AllianceID:  &alliance.ID,
		})
	}
}

// Join creates a member account in the alliance behind a valid invitation token
func Join(jwtService *auth.JWTService, invitations *repository.InvitationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)

		var req JoinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		invitation, err := invitations.GetByToken(c.Request.Context(), req.Token)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrInvitationExpired):
				c.JSON(http.StatusForbidden, gin.H{"error": "Invitation token has expired"})
			case errors.Is(err, repository.ErrInvitationNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invitation token"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate invitation"})
			}
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))

		var exists bool
		err = db.QueryRow(c.Request.Context(),
			`SELECT EXISTS(SELECT 1 FROM user_profiles WHERE LOWER(username) = $1)`, username,
		).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		userID := uuid.New()
		_, err = db.Exec(c.Request.Context(), `
			INSERT INTO user_profiles (id, alliance_id, invitation_token_id, username, display_name, role, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`, userID, invitation.AllianceID, invitation.ID, username, req.DisplayName, models.RoleMember, string(hash))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user profile"})
			return
		}

		if err := invitations.MarkUsed(c.Request.Context(), invitation.ID, userID); err != nil {
			logger.L.Warn("failed to mark invitation used", zap.Error(err))
		}

		token, err := jwtService.GenerateToken(userID, &invitation.AllianceID, username, models.RoleMember)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusCreated, LoginResponse{
			Token:       token,
			UserID:      userID,
			Username:    username,
			DisplayName: req.DisplayName,
			Role:        models.RoleMember,
			AllianceID:  &invitation.AllianceID,
		})
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
