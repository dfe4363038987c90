package allocation

import (
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// Compute runs the full allocation pipeline over an in-memory snapshot:
// dependency resolution, urgency scoring, water-filling optimization,
// safety validation and suggestion generation. It is pure and synchronous;
// given identical inputs (including now) it returns identical results,
// which the simulation engine relies on.
//
// Invalid input (non-positive income, no active goals) produces a zero
// result with an explanatory warning, never an error.
func Compute(
	userID uuid.UUID,
	goals []*entity.Goal,
	profile entity.FinancialProfile,
	now time.Time,
	cfg valueobject.EngineConfig,
) *entity.GoalAllocationResult {
	cfg = cfg.Normalized()

	result := &entity.GoalAllocationResult{
		UserID:       userID,
		CalculatedAt: now,
	}

	active := make([]*entity.Goal, 0, len(goals))
	for _, g := range goals {
		if g.Status == entity.GoalStatusActive {
			active = append(active, g)
		}
	}

	if profile.MonthlyIncome <= 0 {
		result.Warnings = append(result.Warnings, "monthly income is missing or non-positive; nothing to allocate")
		result.SafetyCheck = zeroSafetyCheck(profile)
		return result
	}
	if len(active) == 0 {
		result.Warnings = append(result.Warnings, "no active goals; nothing to allocate")
		result.SafetyCheck = zeroSafetyCheck(profile)
		return result
	}

	safetyMargin := profile.MonthlyIncome * cfg.SafetyMarginPercent
	availableForGoals := profile.MonthlyIncome - profile.FixedExpenses - profile.MinimumLivingBudget - safetyMargin
	if availableForGoals < 0 {
		availableForGoals = 0
	}
	result.AvailableForGoals = availableForGoals

	ordered := SortGoalsByDependencies(active)
	index := BuildGoalIndex(ordered)
	cycles := DetectCircularDependencies(ordered)
	for _, c := range cycles {
		result.Warnings = append(result.Warnings, c.Message)
	}

	factors := make(map[uuid.UUID]float64, len(ordered))
	scores := make(map[uuid.UUID]entity.UrgencyBreakdown, len(ordered))
	for _, g := range ordered {
		factors[g.ID] = GetDependencyReductionFactor(g, index, cfg)
		scores[g.ID] = ScoreUrgency(g, now, cfg)
	}

	allocations, remainingBudget, warnings := Optimize(ordered, factors, scores, availableForGoals, now, cfg)
	result.Warnings = append(result.Warnings, warnings...)

	safety, allocations := ValidateSafety(allocations, profile, now)
	result.SafetyCheck = safety

	// Money freed by a safety downscale is not re-spendable; it belongs to
	// the living budget, so only the optimizer's leftover is reported.
	result.RemainingBudget = remainingBudget
	result.TotalAllocated = recomputePercents(allocations)
	result.Allocations = allocations

	result.Suggestions = GenerateSuggestions(ordered, index, allocations, safety, cycles)
	return result
}

// zeroSafetyCheck evaluates the living budget with zero allocations, so
// callers can still render the comfort level of an empty plan.
func zeroSafetyCheck(profile entity.FinancialProfile) entity.SafetyCheck {
	remaining := profile.MonthlyIncome - profile.FixedExpenses
	return entity.SafetyCheck{
		Passed:              remaining >= profile.MinimumLivingBudget,
		RemainingForLife:    remaining,
		MinimumLivingBudget: profile.MinimumLivingBudget,
		ComfortLevel:        classifyComfort(remaining, profile.MinimumLivingBudget),
		ScaleFactor:         1.0,
	}
}
