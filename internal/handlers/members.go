package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
)

// UpdateMemberRole promotes or demotes a member of the alliance
func UpdateMemberRole(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	allianceID, _ := middleware.GetAuthAllianceID(c)
	authUserID, _ := middleware.GetAuthUserID(c)

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if memberID == authUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}

	var req models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := db.Exec(c.Request.Context(), `
		UPDATE user_profiles
		SET role = $1, updated_at = NOW()
		WHERE id = $2 AND alliance_id = $3 AND role != $4
	`, req.Role, memberID, allianceID, models.RoleSuperAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member role"})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	logger.L.Info("member role updated",
		zap.String("alliance_id", allianceID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("role", req.Role))

	c.JSON(http.StatusOK, gin.H{"message": "Member role updated", "role": req.Role})
}

// RemoveMember deletes a member and their activity history from the alliance
func RemoveMember(c *gin.Context) {
	db, _ := middleware.GetDB(c)
	allianceID, _ := middleware.GetAuthAllianceID(c)
	authUserID, _ := middleware.GetAuthUserID(c)

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if memberID == authUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove yourself from the alliance"})
		return
	}

	// The alliance owner can never be removed.
	var isOwner bool
	err = db.QueryRow(c.Request.Context(),
		`SELECT EXISTS(SELECT 1 FROM alliances WHERE id = $1 AND owner_id = $2)`,
		allianceID, memberID,
	).Scan(&isOwner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alliance"})
		return
	}
	if isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot remove the alliance owner"})
		return
	}

	_, err = db.Exec(c.Request.Context(),
		`DELETE FROM activities WHERE user_id = $1 AND alliance_id = $2`,
		memberID, allianceID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member activities"})
		return
	}

	result, err := db.Exec(c.Request.Context(),
		`DELETE FROM user_profiles WHERE id = $1 AND alliance_id = $2`,
		memberID, allianceID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	logger.L.Info("member removed",
		zap.String("alliance_id", allianceID.String()),
		zap.String("member_id", memberID.String()))

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
