package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/guillomef06/activity-tracker/internal/logger"
	"github.com/guillomef06/activity-tracker/internal/middleware"
	"github.com/guillomef06/activity-tracker/internal/models"
	"github.com/guillomef06/activity-tracker/internal/repository"
	"github.com/guillomef06/activity-tracker/internal/scoring"
)

// ListRules returns the alliance's point rules
func ListRules(rules *repository.RuleRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allianceID, _ := middleware.GetAuthAllianceID(c)

		list, err := rules.LoadRules(c.Request.Context(), allianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query point rules"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"rules": list,
			"count": len(list),
		})
	}
}

// CreateRule adds a point rule after checking it does not overlap an existing
// rule for the same activity type. Overlaps are rejected with the conflicting
// rule so the admin can see which range is in the way.
func CreateRule(rules *repository.RuleRepository, engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)

		var req models.CreatePointRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		if req.PositionMin > req.PositionMax {
			c.JSON(http.StatusBadRequest, gin.H{"error": "position_min cannot be greater than position_max"})
			return
		}

		existing, err := rules.LoadRules(c.Request.Context(), allianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query point rules"})
			return
		}

		candidate := models.PointRule{
			AllianceID:   allianceID,
			ActivityType: req.ActivityType,
			PositionMin:  req.PositionMin,
			PositionMax:  req.PositionMax,
			Points:       *req.Points,
		}

		if result := scoring.ValidateNoOverlap(candidate, existing); !result.Valid {
			overlapErr := &scoring.RuleOverlapError{Conflicting: *result.ConflictingRule}
			c.JSON(http.StatusConflict, gin.H{
				"error":            overlapErr.Error(),
				"conflicting_rule": result.ConflictingRule,
			})
			return
		}

		candidate.ID = uuid.New()
		err = db.QueryRow(c.Request.Context(), `
			INSERT INTO activity_point_rules (id, alliance_id, activity_type, position_min, position_max, points, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING created_at, updated_at
		`, candidate.ID, allianceID, candidate.ActivityType, candidate.PositionMin, candidate.PositionMax, candidate.Points).
			Scan(&candidate.CreatedAt, &candidate.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create point rule"})
			return
		}

		reloadRules(c, engine, allianceID)
		c.JSON(http.StatusCreated, candidate)
	}
}

// UpdateRule edits a rule's range or point value. The rule being edited is
// excluded from the overlap check against itself.
func UpdateRule(rules *repository.RuleRepository, engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)

		ruleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
			return
		}

		var req models.UpdatePointRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		existing, err := rules.LoadRules(c.Request.Context(), allianceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query point rules"})
			return
		}

		var current *models.PointRule
		others := make([]models.PointRule, 0, len(existing))
		for i := range existing {
			if existing[i].ID == ruleID {
				current = &existing[i]
				continue
			}
			others = append(others, existing[i])
		}
		if current == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Point rule not found"})
			return
		}

		updated := *current
		if req.PositionMin != nil {
			updated.PositionMin = *req.PositionMin
		}
		if req.PositionMax != nil {
			updated.PositionMax = *req.PositionMax
		}
		if req.Points != nil {
			updated.Points = *req.Points
		}

		if updated.PositionMin > updated.PositionMax {
			c.JSON(http.StatusBadRequest, gin.H{"error": "position_min cannot be greater than position_max"})
			return
		}

		if result := scoring.ValidateNoOverlap(updated, others); !result.Valid {
			overlapErr := &scoring.RuleOverlapError{Conflicting: *result.ConflictingRule}
			c.JSON(http.StatusConflict, gin.H{
				"error":            overlapErr.Error(),
				"conflicting_rule": result.ConflictingRule,
			})
			return
		}

		err = db.QueryRow(c.Request.Context(), `
			UPDATE activity_point_rules
			SET position_min = $1, position_max = $2, points = $3, updated_at = NOW()
			WHERE id = $4 AND alliance_id = $5
			RETURNING updated_at
		`, updated.PositionMin, updated.PositionMax, updated.Points, ruleID, allianceID).
			Scan(&updated.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update point rule"})
			return
		}

		reloadRules(c, engine, allianceID)
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteRule removes a point rule
func DeleteRule(engine *scoring.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		db, _ := middleware.GetDB(c)
		allianceID, _ := middleware.GetAuthAllianceID(c)

		ruleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
			return
		}

		result, err := db.Exec(c.Request.Context(),
			`DELETE FROM activity_point_rules WHERE id = $1 AND alliance_id = $2`,
			ruleID, allianceID,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete point rule"})
			return
		}
		if result.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Point rule not found"})
			return
		}

		reloadRules(c, engine, allianceID)
		c.JSON(http.StatusOK, gin.H{"message": "Point rule deleted"})
	}
}

// reloadRules refreshes the engine's cached snapshot after a rule write so
// the next point calculation sees persisted state.
func reloadRules(c *gin.Context, engine *scoring.Engine, allianceID uuid.UUID) {
	if err := engine.Reload(c.Request.Context(), allianceID); err != nil {
		logger.L.Warn("failed to reload rule cache",
			zap.String("alliance_id", allianceID.String()),
			zap.Error(err))
	}
}
