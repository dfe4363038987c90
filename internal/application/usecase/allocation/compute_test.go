package allocation

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

func TestCompute(t *testing.T) {
	userID := uuid.New()

	t.Run("single goal with a deadline gets the capped monthly need", func(t *testing.T) {
		cfg := testConfig()
		cfg.SafetyMarginPercent = 0
		g := withDeadline(makeGoal("house down payment", 18000, 0, 1), 12)
		profile := testProfile(12000, 6000, 3000)

		result := Compute(userID, []*entity.Goal{g}, profile, testNow, cfg)

		if result.AvailableForGoals != 3000 {
			t.Errorf("expected 3000 available for goals, got %.2f", result.AvailableForGoals)
		}
		a := allocationFor(result.Allocations, g.ID)
		if a == nil {
			t.Fatal("expected an allocation for the goal")
		}
		if math.Abs(a.MonthlyAllocation-1500) > allocationEpsilon {
			t.Errorf("expected allocation 1500.00, got %.2f", a.MonthlyAllocation)
		}
		if a.MonthsToComplete != 12 {
			t.Errorf("expected 12 months to complete, got %d", a.MonthsToComplete)
		}
		if !a.IsAchievable {
			t.Error("expected the goal to be achievable")
		}
		if math.Abs(result.RemainingBudget-1500) > allocationEpsilon {
			t.Errorf("expected remaining budget 1500.00, got %.2f", result.RemainingBudget)
		}
		if !result.SafetyCheck.Passed {
			t.Error("expected the safety check to pass")
		}
	})

	t.Run("safety margin is withheld from the pool", func(t *testing.T) {
		g := makeGoal("anything", 50000, 0, 1)
		profile := testProfile(12000, 6000, 3000)

		result := Compute(userID, []*entity.Goal{g}, profile, testNow, testConfig())

		// 12000 - 6000 - 3000 - 10% of 12000.
		if result.AvailableForGoals != 1800 {
			t.Errorf("expected 1800 available for goals, got %.2f", result.AvailableForGoals)
		}
	})

	t.Run("non-positive income yields a zero result with a warning", func(t *testing.T) {
		g := makeGoal("anything", 5000, 0, 1)
		profile := testProfile(0, 0, 2000)

		result := Compute(userID, []*entity.Goal{g}, profile, testNow, testConfig())

		if len(result.Allocations) != 0 || result.TotalAllocated != 0 {
			t.Errorf("expected an empty plan, got %d allocations totaling %.2f",
				len(result.Allocations), result.TotalAllocated)
		}
		if len(result.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %v", result.Warnings)
		}
		if result.SafetyCheck.ComfortLevel != entity.ComfortLevelCritical {
			t.Errorf("expected comfort level %q, got %q",
				entity.ComfortLevelCritical, result.SafetyCheck.ComfortLevel)
		}
	})

	t.Run("no active goals yields a zero result with a warning", func(t *testing.T) {
		g := makeGoal("paused", 5000, 0, 1)
		g.Status = entity.GoalStatusPaused
		profile := testProfile(10000, 4000, 3000)

		result := Compute(userID, []*entity.Goal{g}, profile, testNow, testConfig())

		if len(result.Allocations) != 0 {
			t.Errorf("expected no allocations, got %d", len(result.Allocations))
		}
		if len(result.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %v", result.Warnings)
		}
		if !result.SafetyCheck.Passed {
			t.Error("expected the empty plan to pass the safety check")
		}
	})

	t.Run("blocked goal gets a throttled share", func(t *testing.T) {
		cfg := testConfig()
		cfg.SafetyMarginPercent = 0
		blocker := makeGoal("emergency fund", 10000, 2000, 3)
		blocked := withDependency(makeGoal("vacation", 50000, 0, 3), blocker)
		profile := testProfile(12000, 6000, 3000)

		result := Compute(userID, []*entity.Goal{blocker, blocked}, profile, testNow, cfg)

		blockerAlloc := allocationFor(result.Allocations, blocker.ID)
		blockedAlloc := allocationFor(result.Allocations, blocked.ID)
		if blockerAlloc == nil || blockedAlloc == nil {
			t.Fatal("expected allocations for both goals")
		}
		if blockedAlloc.DependencyFactor != cfg.DependencyDefaultFactor {
			t.Errorf("expected dependency factor %.2f, got %.2f",
				cfg.DependencyDefaultFactor, blockedAlloc.DependencyFactor)
		}
		if blockedAlloc.MonthlyAllocation >= blockerAlloc.MonthlyAllocation {
			t.Errorf("expected the blocked goal (%.2f) below the blocker (%.2f)",
				blockedAlloc.MonthlyAllocation, blockerAlloc.MonthlyAllocation)
		}
		s := findSuggestion(result.Suggestions, entity.SuggestionChangePriority)
		if s == nil {
			t.Fatal("expected a change_priority suggestion for the blocked goal")
		}
		if s.Priority != entity.SuggestionPriorityHigh {
			t.Errorf("expected high priority for a 20%% blocker, got %q", s.Priority)
		}
	})

	t.Run("dependency cycle surfaces as warnings and suggestions", func(t *testing.T) {
		a := makeGoal("first", 10000, 0, 1)
		b := makeGoal("second", 10000, 0, 2)
		withDependency(a, b)
		withDependency(b, a)
		profile := testProfile(12000, 6000, 3000)

		result := Compute(userID, []*entity.Goal{a, b}, profile, testNow, testConfig())

		if len(result.Warnings) == 0 {
			t.Error("expected a cycle warning")
		}
		if findSuggestion(result.Suggestions, entity.SuggestionRemoveGoal) == nil {
			t.Error("expected a remove_goal suggestion")
		}
		// Both goals still receive something despite the cycle.
		for _, g := range []*entity.Goal{a, b} {
			alloc := allocationFor(result.Allocations, g.ID)
			if alloc == nil {
				t.Fatalf("%s: expected an allocation", g.Name)
			}
		}
	})

	t.Run("income drop shrinks every allocation", func(t *testing.T) {
		cfg := testConfig()
		goals := func() []*entity.Goal {
			return []*entity.Goal{
				withDeadline(makeGoal("car", 24000, 0, 2), 24),
				makeGoal("cushion", 30000, 5000, 6),
			}
		}

		before := Compute(userID, goals(), testProfile(12000, 6000, 3000), testNow, cfg)
		after := Compute(userID, goals(), testProfile(10000, 6000, 3000), testNow, cfg)

		if after.AvailableForGoals >= before.AvailableForGoals {
			t.Fatalf("expected the pool to shrink, got %.2f -> %.2f",
				before.AvailableForGoals, after.AvailableForGoals)
		}
		if after.TotalAllocated >= before.TotalAllocated {
			t.Errorf("expected total allocated to shrink, got %.2f -> %.2f",
				before.TotalAllocated, after.TotalAllocated)
		}
	})

	t.Run("expenses above income clamp the pool to zero", func(t *testing.T) {
		g := makeGoal("anything", 5000, 0, 1)
		profile := testProfile(5000, 6000, 2000)

		result := Compute(userID, []*entity.Goal{g}, profile, testNow, testConfig())

		if result.AvailableForGoals != 0 {
			t.Errorf("expected zero available for goals, got %.2f", result.AvailableForGoals)
		}
		if result.TotalAllocated != 0 {
			t.Errorf("expected nothing allocated, got %.2f", result.TotalAllocated)
		}
	})

	t.Run("identical inputs yield identical results", func(t *testing.T) {
		goals := []*entity.Goal{
			withDeadline(makeGoal("house", 18000, 3000, 1), 12),
			makeGoal("cushion", 20000, 0, 5),
		}
		profile := testProfile(12000, 6000, 3000)

		first := Compute(userID, goals, profile, testNow, testConfig())
		second := Compute(userID, goals, profile, testNow, testConfig())

		if first.TotalAllocated != second.TotalAllocated {
			t.Errorf("expected identical totals, got %.6f and %.6f",
				first.TotalAllocated, second.TotalAllocated)
		}
		for i := range first.Allocations {
			if first.Allocations[i].MonthlyAllocation != second.Allocations[i].MonthlyAllocation {
				t.Errorf("%s: allocations differ between runs", first.Allocations[i].GoalName)
			}
		}
	})

	t.Run("allocation percents sum to one hundred", func(t *testing.T) {
		goals := []*entity.Goal{
			withDeadline(makeGoal("a", 18000, 0, 1), 12),
			withDeadline(makeGoal("b", 12000, 0, 4), 24),
			makeGoal("c", 40000, 0, 8),
		}
		profile := testProfile(12000, 6000, 3000)

		result := Compute(userID, goals, profile, testNow, testConfig())

		if result.TotalAllocated <= 0 {
			t.Fatal("expected a non-empty plan")
		}
		sum := 0.0
		for _, a := range result.Allocations {
			sum += a.AllocationPercent
		}
		if math.Abs(sum-100) > 1e-6 {
			t.Errorf("expected percents to sum to 100, got %.4f", sum)
		}
	})
}
