package allocation

import (
	"testing"

	"github.com/goal-planner/backend/internal/domain/entity"
)

func findSuggestion(suggestions []entity.Suggestion, typ entity.SuggestionType) *entity.Suggestion {
	for i := range suggestions {
		if suggestions[i].Type == typ {
			return &suggestions[i]
		}
	}
	return nil
}

func TestGenerateSuggestions(t *testing.T) {
	t.Run("cycle produces a high-priority removal suggestion", func(t *testing.T) {
		a := makeGoal("first", 1000, 0, 1)
		b := makeGoal("second", 1000, 0, 2)
		withDependency(a, b)
		withDependency(b, a)
		goals := []*entity.Goal{a, b}
		index := BuildGoalIndex(goals)
		cycles := DetectCircularDependencies(goals)

		suggestions := GenerateSuggestions(goals, index, nil, entity.SafetyCheck{Passed: true}, cycles)

		s := findSuggestion(suggestions, entity.SuggestionRemoveGoal)
		if s == nil {
			t.Fatal("expected a remove_goal suggestion")
		}
		if s.Priority != entity.SuggestionPriorityHigh {
			t.Errorf("expected high priority, got %q", s.Priority)
		}
	})

	t.Run("barely-started blocker produces a high-priority reprioritization", func(t *testing.T) {
		blocker := makeGoal("emergency fund", 10000, 2000, 3) // 20% funded
		blocked := withDependency(makeGoal("vacation", 5000, 0, 5), blocker)
		goals := []*entity.Goal{blocker, blocked}
		index := BuildGoalIndex(goals)

		suggestions := GenerateSuggestions(goals, index, nil, entity.SafetyCheck{Passed: true}, nil)

		s := findSuggestion(suggestions, entity.SuggestionChangePriority)
		if s == nil {
			t.Fatal("expected a change_priority suggestion")
		}
		if s.Priority != entity.SuggestionPriorityHigh {
			t.Errorf("expected high priority for a 20%% blocker, got %q", s.Priority)
		}
		if s.GoalID == nil || *s.GoalID != blocked.ID {
			t.Error("expected the suggestion to reference the blocked goal")
		}
	})

	t.Run("half-funded blocker produces a medium-priority reprioritization", func(t *testing.T) {
		blocker := makeGoal("emergency fund", 10000, 5000, 3)
		blocked := withDependency(makeGoal("vacation", 5000, 0, 5), blocker)
		goals := []*entity.Goal{blocker, blocked}
		index := BuildGoalIndex(goals)

		suggestions := GenerateSuggestions(goals, index, nil, entity.SafetyCheck{Passed: true}, nil)

		s := findSuggestion(suggestions, entity.SuggestionChangePriority)
		if s == nil {
			t.Fatal("expected a change_priority suggestion")
		}
		if s.Priority != entity.SuggestionPriorityMedium {
			t.Errorf("expected medium priority, got %q", s.Priority)
		}
	})

	t.Run("completed blocker produces nothing", func(t *testing.T) {
		blocker := makeGoal("done", 10000, 10000, 3)
		blocked := withDependency(makeGoal("next", 5000, 0, 5), blocker)
		goals := []*entity.Goal{blocker, blocked}
		index := BuildGoalIndex(goals)

		suggestions := GenerateSuggestions(goals, index, nil, entity.SafetyCheck{Passed: true}, nil)

		if s := findSuggestion(suggestions, entity.SuggestionChangePriority); s != nil {
			t.Errorf("expected no suggestion for a completed blocker, got %q", s.Message)
		}
	})

	t.Run("flexible unachievable goal suggests a deadline extension", func(t *testing.T) {
		g := withDeadline(makeGoal("trip", 10000, 0, 3), 2)
		g.IsFlexible = true
		goals := []*entity.Goal{g}
		index := BuildGoalIndex(goals)
		completion := testNow.AddDate(0, 10, 0)
		allocations := []entity.GoalAllocation{
			{
				GoalID:                 g.ID,
				GoalName:               g.Name,
				MonthlyAllocation:      1000,
				RemainingAmount:        10000,
				MonthsToComplete:       10,
				ExpectedCompletionDate: &completion,
				IsAchievable:           false,
			},
		}

		suggestions := GenerateSuggestions(goals, index, allocations, entity.SafetyCheck{Passed: true}, nil)

		s := findSuggestion(suggestions, entity.SuggestionAdjustDeadline)
		if s == nil {
			t.Fatal("expected an adjust_deadline suggestion")
		}
		if s.Priority != entity.SuggestionPriorityMedium {
			t.Errorf("expected medium priority, got %q", s.Priority)
		}
	})

	t.Run("inflexible unachievable goal suggests more income", func(t *testing.T) {
		g := withDeadline(makeGoal("tuition", 10000, 0, 1), 2)
		g.IsFlexible = false
		goals := []*entity.Goal{g}
		index := BuildGoalIndex(goals)
		allocations := []entity.GoalAllocation{
			{GoalID: g.ID, GoalName: g.Name, MonthlyAllocation: 1000, RemainingAmount: 10000, MonthsToComplete: 10, IsAchievable: false},
		}

		suggestions := GenerateSuggestions(goals, index, allocations, entity.SafetyCheck{Passed: true}, nil)

		if findSuggestion(suggestions, entity.SuggestionIncreaseIncome) == nil {
			t.Fatal("expected an increase_income suggestion")
		}
		if findSuggestion(suggestions, entity.SuggestionAdjustDeadline) != nil {
			t.Error("expected no deadline suggestion for an inflexible goal")
		}
	})

	t.Run("zeroed allocation yields no deadline suggestion", func(t *testing.T) {
		g := withDeadline(makeGoal("starved", 10000, 0, 1), 2)
		g.IsFlexible = true
		goals := []*entity.Goal{g}
		index := BuildGoalIndex(goals)
		allocations := []entity.GoalAllocation{
			{GoalID: g.ID, GoalName: g.Name, MonthlyAllocation: 0, RemainingAmount: 10000, IsAchievable: false},
		}

		suggestions := GenerateSuggestions(goals, index, allocations, entity.SafetyCheck{Passed: true}, nil)

		if len(suggestions) != 0 {
			t.Errorf("expected no suggestions, got %d", len(suggestions))
		}
	})

	t.Run("safety failure suggests reducing expenses", func(t *testing.T) {
		safety := entity.SafetyCheck{Passed: false, Shortfall: 1000}

		suggestions := GenerateSuggestions(nil, GoalIndex{}, nil, safety, nil)

		s := findSuggestion(suggestions, entity.SuggestionReduceExpenses)
		if s == nil {
			t.Fatal("expected a reduce_expenses suggestion")
		}
		if s.Priority != entity.SuggestionPriorityHigh {
			t.Errorf("expected high priority, got %q", s.Priority)
		}
	})

	t.Run("output is ranked high before medium", func(t *testing.T) {
		blocker := makeGoal("blocker", 10000, 6000, 3) // medium reprioritization
		blocked := withDependency(makeGoal("blocked", 5000, 0, 5), blocker)
		goals := []*entity.Goal{blocker, blocked}
		index := BuildGoalIndex(goals)
		safety := entity.SafetyCheck{Passed: false, Shortfall: 500} // high

		suggestions := GenerateSuggestions(goals, index, nil, safety, nil)

		if len(suggestions) != 2 {
			t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
		}
		if suggestions[0].Priority != entity.SuggestionPriorityHigh {
			t.Errorf("expected the high-priority suggestion first, got %q", suggestions[0].Priority)
		}
		if suggestions[1].Priority != entity.SuggestionPriorityMedium {
			t.Errorf("expected the medium-priority suggestion second, got %q", suggestions[1].Priority)
		}
	})
}
