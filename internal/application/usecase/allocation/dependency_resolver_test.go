package allocation

import (
	"testing"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

func TestSortGoalsByDependencies(t *testing.T) {
	t.Run("prerequisite comes before dependent", func(t *testing.T) {
		a := makeGoal("emergency fund", 10000, 0, 1)
		b := withDependency(makeGoal("vacation", 5000, 0, 5), a)

		ordered := SortGoalsByDependencies([]*entity.Goal{b, a})
		if len(ordered) != 2 {
			t.Fatalf("expected 2 goals, got %d", len(ordered))
		}
		if ordered[0].ID != a.ID {
			t.Errorf("expected prerequisite %q first, got %q", a.Name, ordered[0].Name)
		}
	})

	t.Run("terminates on a two-goal cycle", func(t *testing.T) {
		a := makeGoal("first", 1000, 0, 1)
		b := makeGoal("second", 1000, 0, 2)
		withDependency(a, b)
		withDependency(b, a)

		ordered := SortGoalsByDependencies([]*entity.Goal{a, b})
		if len(ordered) != 2 {
			t.Fatalf("expected both goals despite the cycle, got %d", len(ordered))
		}
	})

	t.Run("terminates on a self-dependency", func(t *testing.T) {
		a := makeGoal("self", 1000, 0, 1)
		withDependency(a, a)

		ordered := SortGoalsByDependencies([]*entity.Goal{a})
		if len(ordered) != 1 {
			t.Fatalf("expected 1 goal, got %d", len(ordered))
		}
	})

	t.Run("dangling dependency is ignored", func(t *testing.T) {
		a := makeGoal("orphan", 1000, 0, 1)
		missing := uuid.New()
		a.DependsOnGoalID = &missing

		ordered := SortGoalsByDependencies([]*entity.Goal{a})
		if len(ordered) != 1 {
			t.Fatalf("expected 1 goal, got %d", len(ordered))
		}
	})

	t.Run("keeps input order among independent goals", func(t *testing.T) {
		a := makeGoal("first", 1000, 0, 1)
		b := makeGoal("second", 1000, 0, 2)
		c := makeGoal("third", 1000, 0, 3)

		ordered := SortGoalsByDependencies([]*entity.Goal{a, b, c})
		for i, g := range []*entity.Goal{a, b, c} {
			if ordered[i].ID != g.ID {
				t.Errorf("expected %q at position %d, got %q", g.Name, i, ordered[i].Name)
			}
		}
	})
}

func TestDetectCircularDependencies(t *testing.T) {
	t.Run("reports a two-goal cycle once", func(t *testing.T) {
		a := makeGoal("first", 1000, 0, 1)
		b := makeGoal("second", 1000, 0, 2)
		withDependency(a, b)
		withDependency(b, a)

		warnings := DetectCircularDependencies([]*entity.Goal{a, b})
		if len(warnings) != 1 {
			t.Fatalf("expected 1 cycle warning, got %d", len(warnings))
		}
		if warnings[0].Message == "" {
			t.Error("expected a non-empty cycle message")
		}
	})

	t.Run("no warnings for an acyclic chain", func(t *testing.T) {
		a := makeGoal("root", 1000, 0, 1)
		b := withDependency(makeGoal("middle", 1000, 0, 2), a)
		c := withDependency(makeGoal("leaf", 1000, 0, 3), b)

		warnings := DetectCircularDependencies([]*entity.Goal{c, b, a})
		if len(warnings) != 0 {
			t.Fatalf("expected no warnings, got %d", len(warnings))
		}
	})
}

func TestCanGoalStart(t *testing.T) {
	a := makeGoal("blocker", 10000, 0, 1)
	b := withDependency(makeGoal("blocked", 5000, 0, 5), a)
	index := BuildGoalIndex([]*entity.Goal{a, b})

	if !CanGoalStart(a, index) {
		t.Error("goal without dependency should start")
	}
	if CanGoalStart(b, index) {
		t.Error("goal with incomplete prerequisite should not start")
	}

	a.CurrentAmount = a.TargetAmount
	if !CanGoalStart(b, index) {
		t.Error("goal with completed prerequisite should start")
	}
}

func TestGetDependencyReductionFactor(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name            string
		blockerProgress float64
		want            float64
	}{
		{"blocker barely started", 0.10, cfg.DependencyDefaultFactor},
		{"blocker just below threshold", 0.49, cfg.DependencyDefaultFactor},
		{"blocker at threshold", 0.50, cfg.DependencyPartialFactor},
		{"blocker well past threshold", 0.80, cfg.DependencyPartialFactor},
		{"blocker complete", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocker := makeGoal("blocker", 10000, 10000*tt.blockerProgress, 1)
			blocked := withDependency(makeGoal("blocked", 5000, 0, 5), blocker)
			index := BuildGoalIndex([]*entity.Goal{blocker, blocked})

			got := GetDependencyReductionFactor(blocked, index, cfg)
			if got != tt.want {
				t.Errorf("expected factor %.2f, got %.2f", tt.want, got)
			}
		})
	}

	t.Run("no dependency means full factor", func(t *testing.T) {
		g := makeGoal("free", 1000, 0, 1)
		if got := GetDependencyReductionFactor(g, GoalIndex{}, cfg); got != 1.0 {
			t.Errorf("expected 1.0, got %.2f", got)
		}
	})

	t.Run("dangling dependency means full factor", func(t *testing.T) {
		g := makeGoal("orphan", 1000, 0, 1)
		missing := uuid.New()
		g.DependsOnGoalID = &missing
		if got := GetDependencyReductionFactor(g, GoalIndex{}, cfg); got != 1.0 {
			t.Errorf("expected 1.0, got %.2f", got)
		}
	})
}

func TestGetDependencyChain(t *testing.T) {
	t.Run("chain is ordered root to leaf", func(t *testing.T) {
		a := makeGoal("root", 1000, 0, 1)
		b := withDependency(makeGoal("middle", 1000, 0, 2), a)
		c := withDependency(makeGoal("leaf", 1000, 0, 3), b)
		index := BuildGoalIndex([]*entity.Goal{a, b, c})

		chain := GetDependencyChain(c, index)
		if len(chain) != 3 {
			t.Fatalf("expected chain of 3, got %d", len(chain))
		}
		if chain[0].ID != a.ID || chain[2].ID != c.ID {
			t.Errorf("expected root %q first and leaf %q last, got %q and %q",
				a.Name, c.Name, chain[0].Name, chain[2].Name)
		}
	})

	t.Run("cycle cuts the walk short", func(t *testing.T) {
		a := makeGoal("first", 1000, 0, 1)
		b := makeGoal("second", 1000, 0, 2)
		withDependency(a, b)
		withDependency(b, a)
		index := BuildGoalIndex([]*entity.Goal{a, b})

		chain := GetDependencyChain(a, index)
		if len(chain) != 2 {
			t.Fatalf("expected chain of 2 despite the cycle, got %d", len(chain))
		}
	})
}
