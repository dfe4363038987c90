package allocation

import (
	"math"
	"testing"
	"time"
)

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name     string
		priority int
		want     float64
	}{
		{"highest priority scores 1", 1, 1.0},
		{"lowest priority scores 0", 10, 0.0},
		{"middle priority", 5, 5.0 / 9.0},
		{"below range is clamped high", 0, 1.0},
		{"above range is clamped low", 15, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priorityScore(tt.priority)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %.4f, got %.4f", tt.want, got)
			}
		})
	}
}

func TestTimeProximityScore(t *testing.T) {
	t.Run("no deadline scores the floor value", func(t *testing.T) {
		g := makeGoal("open ended", 10000, 0, 5)
		if got := timeProximityScore(g, testNow); got != noDeadlineTimeScore {
			t.Errorf("expected %.2f, got %.2f", noDeadlineTimeScore, got)
		}
	})

	t.Run("completed goal scores zero", func(t *testing.T) {
		g := withDeadline(makeGoal("done", 10000, 10000, 1), 6)
		if got := timeProximityScore(g, testNow); got != 0 {
			t.Errorf("expected 0, got %.2f", got)
		}
	})

	t.Run("past due scores one", func(t *testing.T) {
		g := withDeadline(makeGoal("overdue", 10000, 2000, 1), -2)
		if got := timeProximityScore(g, testNow); got != 1 {
			t.Errorf("expected 1, got %.2f", got)
		}
	})

	t.Run("deadline with no funding rate scores one", func(t *testing.T) {
		g := withDeadline(makeGoal("unfunded", 10000, 0, 1), 6)
		if got := timeProximityScore(g, testNow); got != 1 {
			t.Errorf("expected 1, got %.2f", got)
		}
	})

	t.Run("comfortable pace scores the needed-to-available ratio", func(t *testing.T) {
		g := withDeadline(makeGoal("on track", 10000, 4000, 1), 12)
		g.MonthlyAllocation = 1000 // needs 6 of the 12 months
		if got := timeProximityScore(g, testNow); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("expected 0.5, got %.4f", got)
		}
	})

	t.Run("impossible pace is clamped to one", func(t *testing.T) {
		g := withDeadline(makeGoal("behind", 24000, 0, 1), 12)
		g.MonthlyAllocation = 1000 // needs 24 months
		if got := timeProximityScore(g, testNow); got != 1 {
			t.Errorf("expected 1, got %.4f", got)
		}
	})
}

func TestProgressGapScore(t *testing.T) {
	t.Run("unfunded fraction of target", func(t *testing.T) {
		g := makeGoal("quarter funded", 10000, 2500, 5)
		if got := progressGapScore(g); math.Abs(got-0.75) > 1e-9 {
			t.Errorf("expected 0.75, got %.4f", got)
		}
	})

	t.Run("zero target scores zero", func(t *testing.T) {
		g := makeGoal("degenerate", 0, 0, 5)
		if got := progressGapScore(g); got != 0 {
			t.Errorf("expected 0, got %.4f", got)
		}
	})
}

func TestScoreUrgency(t *testing.T) {
	cfg := testConfig()

	t.Run("composite is the weighted sum of sub-scores", func(t *testing.T) {
		g := withDeadline(makeGoal("house", 18000, 0, 1), 12)

		breakdown := ScoreUrgency(g, testNow, cfg)

		want := cfg.PriorityWeight*breakdown.PriorityScore +
			cfg.TimeWeight*breakdown.TimeProximityScore +
			cfg.ProgressWeight*breakdown.ProgressGapScore
		if math.Abs(breakdown.UrgencyScore-want) > 1e-9 {
			t.Errorf("expected composite %.4f, got %.4f", want, breakdown.UrgencyScore)
		}
	})

	t.Run("composite stays in the unit interval", func(t *testing.T) {
		goals := []struct {
			name     string
			target   float64
			current  float64
			priority int
			deadline int
		}{
			{"max urgency", 10000, 0, 1, -1},
			{"min urgency", 10000, 9999, 10, 0},
			{"mid urgency", 10000, 5000, 5, 24},
		}
		for _, g := range goals {
			goal := makeGoal(g.name, g.target, g.current, g.priority)
			if g.deadline != 0 {
				withDeadline(goal, g.deadline)
			}
			score := ScoreUrgency(goal, testNow, cfg).UrgencyScore
			if score < 0 || score > 1 {
				t.Errorf("%s: score %.4f out of [0,1]", g.name, score)
			}
		}
	})
}

func TestMonthsUntil(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"past deadline", testNow.AddDate(0, -1, 0), 0},
		{"deadline is now", testNow, 0},
		{"later this month counts as one", testNow.AddDate(0, 0, 10), 1},
		{"exactly one month", testNow.AddDate(0, 1, 0), 1},
		{"exactly twelve months", testNow.AddDate(0, 12, 0), 12},
		{"twelve and a half months rounds down", testNow.AddDate(0, 12, 15), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsUntil(testNow, tt.deadline); got != tt.want {
				t.Errorf("expected %d months, got %d", tt.want, got)
			}
		})
	}
}
