package allocation

import (
	"fmt"
	"math"
	"time"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// Comfort thresholds relative to the minimum living budget.
const (
	comfortTightFactor       = 1.1
	comfortComfortableFactor = 1.5
)

// ValidateSafety enforces the hard living-budget floor. When the money left
// after all allocations would fall below the minimum living budget, every
// allocation is scaled down by one common factor; the living budget is
// never sacrificed, regardless of urgency. A failed check is an outcome,
// not an error.
func ValidateSafety(
	allocations []entity.GoalAllocation,
	profile entity.FinancialProfile,
	now time.Time,
) (entity.SafetyCheck, []entity.GoalAllocation) {
	totalAllocated := 0.0
	for i := range allocations {
		totalAllocated += allocations[i].MonthlyAllocation
	}

	remainingForLife := profile.MonthlyIncome - profile.FixedExpenses - totalAllocated
	check := entity.SafetyCheck{
		Passed:              true,
		RemainingForLife:    remainingForLife,
		MinimumLivingBudget: profile.MinimumLivingBudget,
		ScaleFactor:         1.0,
	}

	if remainingForLife < profile.MinimumLivingBudget && totalAllocated > 0 {
		check.Passed = false
		check.Shortfall = profile.MinimumLivingBudget - remainingForLife

		maxForGoals := profile.MonthlyIncome - profile.FixedExpenses - profile.MinimumLivingBudget
		scale := 0.0
		if maxForGoals > 0 {
			scale = maxForGoals / totalAllocated
		}
		check.ScaleFactor = scale

		for i := range allocations {
			allocations[i].MonthlyAllocation *= scale
			allocations[i].IsAchievable = false
			allocations[i].Warnings = append(allocations[i].Warnings, fmt.Sprintf(
				"allocation reduced to protect the living budget (shortfall %.2f)",
				check.Shortfall,
			))
			reproject(&allocations[i], now)
		}

		check.RemainingForLife = profile.MonthlyIncome - profile.FixedExpenses - scale*totalAllocated
	}

	check.ComfortLevel = classifyComfort(check.RemainingForLife, profile.MinimumLivingBudget)
	return check, allocations
}

// reproject recomputes the completion projection after a downscale.
func reproject(a *entity.GoalAllocation, now time.Time) {
	a.MonthsToComplete = 0
	a.ExpectedCompletionDate = nil
	if a.MonthlyAllocation > 0 && a.RemainingAmount > 0 {
		months := int(math.Ceil(a.RemainingAmount / a.MonthlyAllocation))
		a.MonthsToComplete = months
		completion := now.AddDate(0, months, 0)
		a.ExpectedCompletionDate = &completion
	}
}

// classifyComfort buckets the money left for living against the minimum.
func classifyComfort(remainingForLife, minimumLivingBudget float64) entity.ComfortLevel {
	switch {
	case remainingForLife < minimumLivingBudget:
		return entity.ComfortLevelCritical
	case remainingForLife <= minimumLivingBudget*comfortTightFactor:
		return entity.ComfortLevelTight
	case remainingForLife <= minimumLivingBudget*comfortComfortableFactor:
		return entity.ComfortLevelComfortable
	default:
		return entity.ComfortLevelExcellent
	}
}
