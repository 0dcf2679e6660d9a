package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/repository"
)

// GetAlliance returns the authenticated user's alliance with aggregate counts
func GetAlliance(alliances *repository.AllianceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)

		alliance, err := alliances.GetWithStats(c.Request.Context(), allianceID)
		if err != nil {
			if errors.Is(err, repository.ErrAllianceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Alliance not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alliance"})
			}
			return
		}

		c.JSON(http.StatusOK, alliance)
	}
}

// UpdateAlliance renames the alliance
func UpdateAlliance(alliances *repository.AllianceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)

		var req models.UpdateAllianceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		err := alliances.UpdateName(c.Request.Context(), allianceID, req.Name)
		if err != nil {
			if errors.Is(err, repository.ErrAllianceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Alliance not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alliance"})
			}
			return
		}

		logger.L.Info("alliance renamed",
			zap.String("alliance_id", allianceID.String()),
			zap.String("name", req.Name))

		c.JSON(http.StatusOK, gin.H{"message": "Alliance updated", "name": req.Name})
	}
}

// ListAlliances returns every alliance with aggregate counts. Super admin only.
func ListAlliances(alliances *repository.AllianceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := alliances.ListWithStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query alliances"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"alliances": list,
			"count":     len(list),
		})
	}
}
