package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/guillomef06/activity-tracker/internal/models"
)

// PointCalculationResult is the outcome of resolving a point value for a
// submitted activity.
type PointCalculationResult struct {
	Points       int               `json:"points"`
	MatchedRule  *models.PointRule `json:"matched_rule,omitempty"`
	UsedFallback bool              `json:"used_fallback"`
}

// OverlapResult is the outcome of validating a candidate rule against the
// existing rules of the same activity type.
type OverlapResult struct {
	Valid           bool              `json:"valid"`
	ConflictingRule *models.PointRule `json:"conflicting_rule,omitempty"`
}

// RuleOverlapError reports that a candidate rule's position range overlaps an
// existing rule for the same activity type. The write must be rejected; the
// conflict is never resolved by picking a winning rule.
type RuleOverlapError struct {
	Conflicting models.PointRule
}

func (e *RuleOverlapError) Error() string {
	return fmt.Sprintf("rule overlaps existing rule: %s positions %d-%d",
		e.Conflicting.ActivityType, e.Conflicting.PositionMin, e.Conflicting.PositionMax)
}

// CalculatePoints resolves the point value for an activity of the given type
// at the given position. The first rule whose activity type matches and whose
// inclusive range contains the position wins; a well-formed rule set has at
// most one. Without a match the static catalog default applies, and an
// unknown type is worth 0 points. Pure function, safe on unvalidated input.
func CalculatePoints(activityType string, position int, rules []models.PointRule) PointCalculationResult {
	for i := range rules {
		r := &rules[i]
		if r.ActivityType == activityType && position >= r.PositionMin && position <= r.PositionMax {
			return PointCalculationResult{
				Points:      r.Points,
				MatchedRule: r,
			}
		}
	}

	return PointCalculationResult{
		Points:       DefaultPoints(activityType),
		UsedFallback: true,
	}
}

// ValidateNoOverlap checks a candidate rule against existing rules of the
// same activity type. Two inclusive ranges [a,b] and [c,d] overlap unless
// b < c or a > d, so adjacent ranges like [1,5] and [6,10] are valid. When
// editing an existing rule the caller must exclude it from existingRules.
func ValidateNoOverlap(candidate models.PointRule, existingRules []models.PointRule) OverlapResult {
	for i := range existingRules {
		r := &existingRules[i]
		if r.ActivityType != candidate.ActivityType {
			continue
		}
		if candidate.PositionMax < r.PositionMin || candidate.PositionMin > r.PositionMax {
			continue
		}
		return OverlapResult{ConflictingRule: r}
	}
	return OverlapResult{Valid: true}
}

// RuleSource loads the current point rules of an alliance from persistence.
type RuleSource interface {
	LoadRules(ctx context.Context, allianceID uuid.UUID) ([]models.PointRule, error)
}

// Engine caches per-alliance rule snapshots. A snapshot stays valid until the
// next explicit Reload; handlers that write rules reload immediately after a
// successful write. A failed load leaves an empty snapshot, which behaves
// like "no matching rule" and falls back to catalog defaults.
type Engine struct {
	source RuleSource

	mu    sync.RWMutex
	rules map[uuid.UUID][]models.PointRule
}

// NewEngine creates an engine backed by the given rule source.
func NewEngine(source RuleSource) *Engine {
	return &Engine{
		source: source,
		rules:  make(map[uuid.UUID][]models.PointRule),
	}
}

// Reload replaces the cached snapshot for an alliance with the freshest
// persisted state.
func (e *Engine) Reload(ctx context.Context, allianceID uuid.UUID) error {
	rules, err := e.source.LoadRules(ctx, allianceID)
	if err != nil {
		e.mu.Lock()
		e.rules[allianceID] = nil
		e.mu.Unlock()
		return fmt.Errorf("failed to load point rules: %w", err)
	}

	e.mu.Lock()
	e.rules[allianceID] = rules
	e.mu.Unlock()
	return nil
}

// Rules returns the cached snapshot for an alliance, loading it on first use.
func (e *Engine) Rules(ctx context.Context, allianceID uuid.UUID) []models.PointRule {
	e.mu.RLock()
	rules, ok := e.rules[allianceID]
	e.mu.RUnlock()
	if ok {
		return rules
	}

	// No snapshot yet; a failed load is equivalent to "no rules configured".
	_ = e.Reload(ctx, allianceID)

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules[allianceID]
}

// CalculatePoints resolves points using the alliance's cached rule snapshot.
func (e *Engine) CalculatePoints(ctx context.Context, allianceID uuid.UUID, activityType string, position int) PointCalculationResult {
	return CalculatePoints(activityType, position, e.Rules(ctx, allianceID))
}
