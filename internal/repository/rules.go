package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guillomef06/activity-tracker/internal/models"
)

// RuleRepository loads and mutates alliance point rules. It is the rule
// source behind the scoring engine's cache.
type RuleRepository struct {
	db *pgxpool.Pool
}

func NewRuleRepository(db *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{db: db}
}

// LoadRules returns all point rules of an alliance, ordered by activity type
// then range start.
func (r *RuleRepository) LoadRules(ctx context.Context, allianceID uuid.UUID) ([]models.PointRule, error) {
	query := `
		SELECT id, alliance_id, activity_type, position_min, position_max, points, created_at, updated_at
		FROM activity_point_rules
		WHERE alliance_id = $1
		ORDER BY activity_type ASC, position_min ASC
	`

	rows, err := r.db.Query(ctx, query, allianceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []models.PointRule{}
	for rows.Next() {
		var rule models.PointRule
		err := rows.Scan(
			&rule.ID,
			&rule.AllianceID,
			&rule.ActivityType,
			&rule.PositionMin,
			&rule.PositionMax,
			&rule.Points,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}
