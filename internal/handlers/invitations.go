package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/repository"
)

// CreateInvitation generates a join token for the admin's alliance
func CreateInvitation(invitations *repository.InvitationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)
		userID, _ := middleware.GetAuthUserID(c)

		var req models.CreateInvitationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		ttl := repository.DefaultInvitationTTL
		if req.ExpiresInDays > 0 {
			ttl = time.Duration(req.ExpiresInDays) * 24 * time.Hour
		}

		invitation, err := invitations.Create(c.Request.Context(), allianceID, userID, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
			return
		}

		logger.L.Info("invitation created",
			zap.String("alliance_id", allianceID.String()),
			zap.Time("expires_at", invitation.ExpiresAt))

		c.JSON(http.StatusCreated, models.CreateInvitationResponse{
			Token:     invitation.Token,
			ExpiresAt: invitation.ExpiresAt,
		})
	}
}

// ListInvitations returns the alliance's invitations with join counts
func ListInvitations(invitations *repository.InvitationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)

		list, err := invitations.ListByAlliance(c.Request.Context(), allianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query invitations"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"invitations": list,
			"count":       len(list),
		})
	}
}

// ValidateInvitation is the public pre-join check. It never returns the
// alliance ID, only its display name.
func ValidateInvitation(invitations *repository.InvitationRepository, alliances *repository.AllianceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter required"})
			return
		}

		invitation, err := invitations.GetByToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrInvitationExpired):
				c.JSON(http.StatusOK, models.ValidateInvitationResponse{Valid: false, Error: "Invitation token has expired"})
			case errors.Is(err, repository.ErrInvitationNotFound):
				c.JSON(http.StatusOK, models.ValidateInvitationResponse{Valid: false, Error: "Invalid invitation token"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate invitation"})
			}
			return
		}

		alliance, err := alliances.GetByID(c.Request.Context(), invitation.AllianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alliance"})
			return
		}

		c.JSON(http.StatusOK, models.ValidateInvitationResponse{
			Valid:        true,
			AllianceName: alliance.Name,
		})
	}
}

// RevokeInvitation expires an invitation immediately
func RevokeInvitation(invitations *repository.InvitationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)

		invitationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID format"})
			return
		}

		err = invitations.Revoke(c.Request.Context(), allianceID, invitationID)
		if err != nil {
			if errors.Is(err, repository.ErrInvitationNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke invitation"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Invitation revoked"})
	}
}
