package allocation

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// allocationEpsilon is the point below which leftover budget is considered
// fully distributed and the redistribution loop stops.
const allocationEpsilon = 0.01

// Optimize distributes availableForGoals across the (dependency-ordered)
// goals proportionally to urgency x dependency factor, capped per goal at
// the deadline-implied monthly need, floored at min_allocation, with
// capped goals donating unused share back to the pool. The redistribution
// loop is bounded (at most one pass per goal unless configured otherwise),
// which makes termination a property of the algorithm rather than of the
// input.
//
// Returns the per-goal allocations in input order, the budget that stayed
// unallocated, and run-level warnings.
func Optimize(
	goals []*entity.Goal,
	factors map[uuid.UUID]float64,
	scores map[uuid.UUID]entity.UrgencyBreakdown,
	availableForGoals float64,
	now time.Time,
	cfg valueobject.EngineConfig,
) ([]entity.GoalAllocation, float64, []string) {
	allocations := make([]entity.GoalAllocation, len(goals))
	for i, g := range goals {
		allocations[i] = newAllocation(g, factors[g.ID], scores[g.ID])
	}

	if availableForGoals <= 0 {
		for i := range allocations {
			allocations[i].IsAchievable = false
		}
		warning := "no budget available for goals this month; all allocations are zero"
		return allocations, 0, []string{warning}
	}

	caps := make([]float64, len(goals))
	weights := make([]float64, len(goals))
	var weightSum float64
	for i, g := range goals {
		caps[i] = allocationCap(g, now)
		weights[i] = scores[g.ID].UrgencyScore * factors[g.ID]
		weightSum += weights[i]
	}

	var warnings []string
	pool := availableForGoals

	// Floors first: every goal gets its min_allocation before any
	// proportional distribution. If the floors alone exceed the budget they
	// are scaled by a common factor.
	floorSum := 0.0
	for _, g := range goals {
		floorSum += g.MinAllocation
	}
	floorScale := 1.0
	if floorSum > pool && floorSum > 0 {
		floorScale = pool / floorSum
		warnings = append(warnings, fmt.Sprintf(
			"minimum allocations (%.2f) exceed the available budget (%.2f); floors scaled down",
			floorSum, pool,
		))
	}
	for i, g := range goals {
		floor := g.MinAllocation * floorScale
		allocations[i].MonthlyAllocation = floor
		pool -= floor
	}

	// Water-filling: distribute the remaining pool proportionally to
	// weight among goals still below their cap; capped goals return their
	// unused share to the pool for the next pass.
	passes := cfg.MaxRedistributionPasses
	if passes <= 0 {
		passes = len(goals)
	}
	if passes < 1 {
		passes = 1
	}

	for pass := 0; pass < passes && pool > allocationEpsilon; pass++ {
		activeWeight := 0.0
		for i := range goals {
			if allocations[i].MonthlyAllocation < caps[i] && weights[i] > 0 {
				activeWeight += weights[i]
			}
		}
		if activeWeight <= 0 {
			break
		}

		distributed := 0.0
		for i := range goals {
			if allocations[i].MonthlyAllocation >= caps[i] || weights[i] <= 0 {
				continue
			}
			share := pool * weights[i] / activeWeight
			headroom := caps[i] - allocations[i].MonthlyAllocation
			if share > headroom {
				share = headroom
			}
			allocations[i].MonthlyAllocation += share
			distributed += share
		}

		pool -= distributed
		if distributed <= allocationEpsilon {
			break
		}
	}

	for i, g := range goals {
		finalize(&allocations[i], g, now)
	}

	if pool < 0 {
		pool = 0
	}
	return allocations, pool, warnings
}

// newAllocation seeds a zero allocation for the goal.
func newAllocation(g *entity.Goal, factor float64, score entity.UrgencyBreakdown) entity.GoalAllocation {
	return entity.GoalAllocation{
		GoalID:            g.ID,
		GoalName:          g.Name,
		RemainingAmount:   g.RemainingAmount(),
		Urgency:           score,
		DependencyFactor:  factor,
		SnapshotUpdatedAt: g.UpdatedAt,
	}
}

// allocationCap returns the most the goal needs per month: enough to reach
// the target by its deadline, never more than the full remaining amount.
// Goals without a deadline are capped by the remaining amount alone; goals
// past their deadline stay capped the same way and are flagged unachievable
// in finalize.
func allocationCap(g *entity.Goal, now time.Time) float64 {
	remaining := g.RemainingAmount()
	if remaining <= 0 {
		return 0
	}
	if g.Deadline == nil {
		return remaining
	}
	months := MonthsUntil(now, *g.Deadline)
	if months <= 0 {
		return remaining
	}
	monthlyCap := remaining / float64(months)
	if monthlyCap > remaining {
		return remaining
	}
	return monthlyCap
}

// finalize derives the projection fields from the decided allocation.
func finalize(a *entity.GoalAllocation, g *entity.Goal, now time.Time) {
	if a.MonthlyAllocation > 0 && a.RemainingAmount > 0 {
		months := int(math.Ceil(a.RemainingAmount / a.MonthlyAllocation))
		a.MonthsToComplete = months
		completion := now.AddDate(0, months, 0)
		a.ExpectedCompletionDate = &completion
	}

	a.IsAchievable = a.MonthlyAllocation > 0
	if g.Deadline != nil {
		months := MonthsUntil(now, *g.Deadline)
		if months <= 0 {
			a.IsAchievable = false
			a.Warnings = append(a.Warnings, fmt.Sprintf("deadline %s has already passed", g.Deadline.Format("2006-01-02")))
		} else if a.MonthsToComplete > months {
			a.IsAchievable = false
			a.Warnings = append(a.Warnings, fmt.Sprintf(
				"needs %d months at the current allocation but only %d remain until the deadline",
				a.MonthsToComplete, months,
			))
		}
	}
}

// recomputePercents fills AllocationPercent once the total is known.
func recomputePercents(allocations []entity.GoalAllocation) float64 {
	total := 0.0
	for i := range allocations {
		total += allocations[i].MonthlyAllocation
	}
	for i := range allocations {
		if total > 0 {
			allocations[i].AllocationPercent = allocations[i].MonthlyAllocation / total * 100
		} else {
			allocations[i].AllocationPercent = 0
		}
	}
	return total
}
