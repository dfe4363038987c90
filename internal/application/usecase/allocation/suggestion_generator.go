package allocation

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// blockerLowProgressPercent is the blocker progress below which a blocked
// goal yields a high-priority suggestion instead of a medium one.
const blockerLowProgressPercent = 25.0

// GenerateSuggestions derives actionable recommendations from signals the
// pipeline already computed: blocked dependencies, cycles, infeasible
// deadlines and safety downscaling. Output is ranked high to medium to low.
func GenerateSuggestions(
	goals []*entity.Goal,
	index GoalIndex,
	allocations []entity.GoalAllocation,
	safety entity.SafetyCheck,
	cycles []CycleWarning,
) []entity.Suggestion {
	var suggestions []entity.Suggestion

	cyclic := make(map[uuid.UUID]bool, len(cycles))
	for _, c := range cycles {
		cyclic[c.GoalID] = true
		goalID := c.GoalID
		suggestions = append(suggestions, entity.Suggestion{
			Type:     entity.SuggestionRemoveGoal,
			GoalID:   &goalID,
			Message:  fmt.Sprintf("goals %q and its prerequisite form a dependency cycle; remove one dependency to unblock both", c.GoalName),
			Impact:   "both goals currently throttle each other",
			Priority: entity.SuggestionPriorityHigh,
		})
	}

	for _, g := range goals {
		if g.DependsOnGoalID == nil || cyclic[g.ID] {
			continue
		}
		blocker, ok := index[*g.DependsOnGoalID]
		if !ok || blocker.IsCompleted() {
			continue
		}

		progress := blocker.ProgressPercent()
		priority := entity.SuggestionPriorityMedium
		if progress < blockerLowProgressPercent {
			priority = entity.SuggestionPriorityHigh
		}

		goalID := g.ID
		suggestions = append(suggestions, entity.Suggestion{
			Type:   entity.SuggestionChangePriority,
			GoalID: &goalID,
			Message: fmt.Sprintf(
				"%q is throttled until %q completes (%.0f%% funded); raising the priority of %q would unblock it sooner",
				g.Name, blocker.Name, progress, blocker.Name,
			),
			Impact:   fmt.Sprintf("%q receives a reduced share while blocked", g.Name),
			Priority: priority,
		})
	}

	for i := range allocations {
		a := &allocations[i]
		if a.IsAchievable || a.MonthlyAllocation <= 0 {
			continue
		}
		g, ok := index[a.GoalID]
		if !ok || g.Deadline == nil {
			continue
		}

		goalID := a.GoalID
		if g.IsFlexible {
			suggestions = append(suggestions, entity.Suggestion{
				Type:   entity.SuggestionAdjustDeadline,
				GoalID: &goalID,
				Message: fmt.Sprintf(
					"%q cannot be finished by %s at the current allocation; extending the deadline by %d months would make it achievable",
					g.Name, g.Deadline.Format("2006-01-02"), deadlineExtension(a, g),
				),
				Impact:   "goal stays on plan without extra income",
				Priority: entity.SuggestionPriorityMedium,
			})
		} else {
			suggestions = append(suggestions, entity.Suggestion{
				Type:   entity.SuggestionIncreaseIncome,
				GoalID: &goalID,
				Message: fmt.Sprintf(
					"%q has a fixed deadline that the current budget cannot meet; additional income is needed to stay on track",
					g.Name,
				),
				Impact:   "without more income the deadline will be missed",
				Priority: entity.SuggestionPriorityMedium,
			})
		}
	}

	if !safety.Passed {
		suggestions = append(suggestions, entity.Suggestion{
			Type: entity.SuggestionReduceExpenses,
			Message: fmt.Sprintf(
				"fixed expenses leave %.2f less than the minimum living budget; reducing expenses by that amount restores the plan",
				safety.Shortfall,
			),
			Impact:   "all goal allocations are currently scaled down",
			Priority: entity.SuggestionPriorityHigh,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestionRank(suggestions[i].Priority) < suggestionRank(suggestions[j].Priority)
	})
	return suggestions
}

// deadlineExtension estimates how many extra months the goal needs beyond
// its deadline at the current allocation.
func deadlineExtension(a *entity.GoalAllocation, g *entity.Goal) int {
	if a.MonthsToComplete <= 0 || g.Deadline == nil || a.ExpectedCompletionDate == nil {
		return 1
	}
	extension := MonthsUntil(*g.Deadline, *a.ExpectedCompletionDate)
	if extension < 1 {
		return 1
	}
	return extension
}

func suggestionRank(p entity.SuggestionPriority) int {
	switch p {
	case entity.SuggestionPriorityHigh:
		return 0
	case entity.SuggestionPriorityMedium:
		return 1
	default:
		return 2
	}
}
