package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillomef06/activity-tracker/internal/models"
)

func rule(activityType string, min, max, points int) models.PointRule {
	return models.PointRule{
		ID:           uuid.New(),
		ActivityType: activityType,
		PositionMin:  min,
		PositionMax:  max,
		Points:       points,
	}
}

func TestCalculatePoints_MatchedRule(t *testing.T) {
	rules := []models.PointRule{
		rule("legion", 1, 5, 50),
		rule("legion", 6, 10, 25),
		rule("kvk-prep", 1, 3, 100),
	}

	tests := []struct {
		name         string
		activityType string
		position     int
		wantPoints   int
		wantFallback bool
	}{
		{"first range lower bound", "legion", 1, 50, false},
		{"first range upper bound", "legion", 5, 50, false},
		{"second range", "legion", 7, 25, false},
		{"below all ranges falls back", "legion", 0, 8, true},
		{"above all ranges falls back", "legion", 11, 8, true},
		{"other type matches its own rule", "kvk-prep", 2, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePoints(tt.activityType, tt.position, rules)
			assert.Equal(t, tt.wantPoints, result.Points)
			assert.Equal(t, tt.wantFallback, result.UsedFallback)
			if tt.wantFallback {
				assert.Nil(t, result.MatchedRule)
			} else {
				require.NotNil(t, result.MatchedRule)
				assert.Equal(t, tt.activityType, result.MatchedRule.ActivityType)
			}
		})
	}
}

func TestCalculatePoints_FallbackDeterminism(t *testing.T) {
	// With no rules configured the result always equals the catalog default.
	for _, at := range ActivityTypes {
		result := CalculatePoints(at.Value, 1, nil)
		assert.Equal(t, at.Points, result.Points, at.Value)
		assert.True(t, result.UsedFallback)
	}

	result := CalculatePoints("unknown-type", 1, nil)
	assert.Equal(t, 0, result.Points)
	assert.True(t, result.UsedFallback)
}

func TestCalculatePoints_MalformedInput(t *testing.T) {
	rules := []models.PointRule{rule("legion", 1, 5, 50)}

	result := CalculatePoints("", 1, rules)
	assert.Equal(t, 0, result.Points)
	assert.True(t, result.UsedFallback)

	result = CalculatePoints("legion", -3, rules)
	assert.True(t, result.UsedFallback)
	assert.Equal(t, 8, result.Points)
}

func TestCalculatePoints_FirstMatchWinsOnOverlap(t *testing.T) {
	// Overlapping rules indicate a data-integrity violation; the engine still
	// answers deterministically by picking the first match.
	rules := []models.PointRule{
		rule("legion", 1, 10, 50),
		rule("legion", 5, 15, 30),
	}

	result := CalculatePoints("legion", 7, rules)
	assert.Equal(t, 50, result.Points)
}

func TestValidateNoOverlap(t *testing.T) {
	existing := []models.PointRule{
		rule("legion", 1, 5, 50),
		rule("kvk-prep", 1, 10, 20),
	}

	tests := []struct {
		name      string
		candidate models.PointRule
		wantValid bool
	}{
		{"adjacent range accepted", rule("legion", 6, 10, 25), true},
		{"identical range rejected", rule("legion", 1, 5, 10), false},
		{"contained range rejected", rule("legion", 2, 3, 10), false},
		{"containing range rejected", rule("legion", 1, 20, 10), false},
		{"touching upper bound rejected", rule("legion", 5, 8, 10), false},
		{"touching lower bound rejected", rule("legion", 0, 1, 10), false},
		{"same range other type accepted", rule("golden-expedition", 1, 5, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateNoOverlap(tt.candidate, existing)
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				assert.Nil(t, result.ConflictingRule)
			} else {
				require.NotNil(t, result.ConflictingRule)
				assert.Equal(t, tt.candidate.ActivityType, result.ConflictingRule.ActivityType)
			}
		})
	}
}

func TestValidateNoOverlap_EmptyRuleSet(t *testing.T) {
	result := ValidateNoOverlap(rule("legion", 1, 100, 5), nil)
	assert.True(t, result.Valid)
}

type fakeRuleSource struct {
	rules     []models.PointRule
	err       error
	loadCalls int
}

func (s *fakeRuleSource) LoadRules(_ context.Context, _ uuid.UUID) ([]models.PointRule, error) {
	s.loadCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rules, nil
}

func TestEngine_CachesSnapshotUntilReload(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	source := &fakeRuleSource{rules: []models.PointRule{rule("legion", 1, 5, 50)}}
	engine := NewEngine(source)

	result := engine.CalculatePoints(ctx, allianceID, "legion", 3)
	assert.Equal(t, 50, result.Points)
	assert.Equal(t, 1, source.loadCalls)

	// The snapshot is reused until an explicit reload, even after the source
	// changed underneath.
	source.rules = []models.PointRule{rule("legion", 1, 5, 99)}
	result = engine.CalculatePoints(ctx, allianceID, "legion", 3)
	assert.Equal(t, 50, result.Points)
	assert.Equal(t, 1, source.loadCalls)

	require.NoError(t, engine.Reload(ctx, allianceID))
	result = engine.CalculatePoints(ctx, allianceID, "legion", 3)
	assert.Equal(t, 99, result.Points)
}

func TestEngine_LoadFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	allianceID := uuid.New()
	source := &fakeRuleSource{err: errors.New("connection refused")}
	engine := NewEngine(source)

	// No rules available behaves exactly like no matching rule.
	result := engine.CalculatePoints(ctx, allianceID, "legion", 1)
	assert.True(t, result.UsedFallback)
	assert.Equal(t, 8, result.Points)

	assert.Error(t, engine.Reload(ctx, allianceID))
}
