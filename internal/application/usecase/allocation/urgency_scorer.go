package allocation

import (
	"time"

	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// noDeadlineTimeScore is the time-proximity score of a goal without a
// deadline: not urgent by time, but not zero so that two otherwise equal
// goals do not collapse to identical urgency purely on priority and gap.
const noDeadlineTimeScore = 0.1

// ScoreUrgency computes the goal's urgency breakdown at the given instant.
// All sub-scores are normalized to [0,1]; the composite is the weighted sum
// under the (normalized) config weights, so it stays in [0,1] as well.
func ScoreUrgency(goal *entity.Goal, now time.Time, cfg valueobject.EngineConfig) entity.UrgencyBreakdown {
	breakdown := entity.UrgencyBreakdown{
		PriorityScore:      priorityScore(goal.Priority),
		TimeProximityScore: timeProximityScore(goal, now),
		ProgressGapScore:   progressGapScore(goal),
	}

	breakdown.UrgencyScore = cfg.PriorityWeight*breakdown.PriorityScore +
		cfg.TimeWeight*breakdown.TimeProximityScore +
		cfg.ProgressWeight*breakdown.ProgressGapScore

	return breakdown
}

// priorityScore inverse-normalizes priority: 1 -> 1.0, 10 -> 0.0.
func priorityScore(priority int) float64 {
	if priority < entity.PriorityHighest {
		priority = entity.PriorityHighest
	}
	if priority > entity.PriorityLowest {
		priority = entity.PriorityLowest
	}
	return float64(entity.PriorityLowest-priority) / float64(entity.PriorityLowest-entity.PriorityHighest)
}

// timeProximityScore grows as the deadline approaches relative to the
// months needed to finish at the current allocation rate.
func timeProximityScore(goal *entity.Goal, now time.Time) float64 {
	if goal.Deadline == nil {
		return noDeadlineTimeScore
	}

	remaining := goal.RemainingAmount()
	if remaining <= 0 {
		return 0
	}

	months := MonthsUntil(now, *goal.Deadline)
	if months <= 0 {
		// Past due and unfinished: maximally urgent.
		return 1
	}

	if goal.MonthlyAllocation <= 0 {
		// No funding rate yet; a deadline with no plan is fully urgent.
		return 1
	}

	monthsNeeded := remaining / goal.MonthlyAllocation
	ratio := monthsNeeded / float64(months)
	if ratio > 1 {
		return 1
	}
	if ratio < 0 {
		return 0
	}
	return ratio
}

// progressGapScore is the unfunded fraction of the target.
func progressGapScore(goal *entity.Goal) float64 {
	if goal.TargetAmount <= 0 {
		return 0
	}
	gap := goal.RemainingAmount() / goal.TargetAmount
	if gap > 1 {
		return 1
	}
	return gap
}

// MonthsUntil counts whole calendar months from now until the deadline.
// A future deadline inside the current month counts as 1 so that a cap
// computed from it stays finite; a past deadline yields 0.
func MonthsUntil(now, deadline time.Time) int {
	if !deadline.After(now) {
		return 0
	}

	months := 0
	cursor := now
	for cursor.AddDate(0, 1, 0).Before(deadline) || cursor.AddDate(0, 1, 0).Equal(deadline) {
		cursor = cursor.AddDate(0, 1, 0)
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}
