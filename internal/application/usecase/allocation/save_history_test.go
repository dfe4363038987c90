package allocation

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
)

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		name         string
		achievable   []bool
		safetyPassed bool
		want         float64
	}{
		{"clean run", []bool{true, true}, true, 1.0},
		{"half achievable", []bool{true, false}, true, 0.5},
		{"nothing achievable", []bool{false, false}, true, 0.0},
		{"clean allocations but safety rescaled", []bool{true, true}, false, 0.5},
		{"half achievable and safety rescaled", []bool{true, false}, false, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &entity.GoalAllocationResult{
				SafetyCheck: entity.SafetyCheck{Passed: tt.safetyPassed},
			}
			for _, ok := range tt.achievable {
				result.Allocations = append(result.Allocations, entity.GoalAllocation{IsAchievable: ok})
			}

			if got := ConfidenceScore(result); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}

	t.Run("empty run scores zero", func(t *testing.T) {
		result := &entity.GoalAllocationResult{SafetyCheck: entity.SafetyCheck{Passed: true}}
		if got := ConfidenceScore(result); got != 0 {
			t.Errorf("expected 0, got %.2f", got)
		}
	})
}

func TestBuildHistoryRecords(t *testing.T) {
	userID := uuid.New()
	g := makeGoal("tracked", 12000, 2000, 2)
	g.MonthlyAllocation = 400

	result := &entity.GoalAllocationResult{
		UserID:       userID,
		CalculatedAt: testNow,
		SafetyCheck:  entity.SafetyCheck{Passed: true},
		Allocations: []entity.GoalAllocation{
			{
				GoalID:            g.ID,
				GoalName:          g.Name,
				MonthlyAllocation: 600,
				AllocationPercent: 100,
				DependencyFactor:  1.0,
				IsAchievable:      true,
			},
		},
	}

	records := BuildHistoryRecords(userID, result, BuildGoalIndex([]*entity.Goal{g}), entity.ReasonRebalance)

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]
	if r.UserID != userID || r.GoalID != g.ID {
		t.Error("expected the record to reference the user and goal")
	}
	if r.MonthlyAllocation != 600 {
		t.Errorf("expected new allocation 600, got %.2f", r.MonthlyAllocation)
	}
	if r.PreviousAllocation != 400 {
		t.Errorf("expected previous allocation 400, got %.2f", r.PreviousAllocation)
	}
	if !r.CalculationDate.Equal(testNow) {
		t.Errorf("expected calculation date %v, got %v", testNow, r.CalculationDate)
	}
	if r.ConfidenceScore != 1.0 {
		t.Errorf("expected confidence 1.0, got %.2f", r.ConfidenceScore)
	}
	if r.Metadata["dependency_factor"] != 1.0 {
		t.Errorf("expected dependency factor in metadata, got %v", r.Metadata["dependency_factor"])
	}
}

func TestSaveHistoryUseCase(t *testing.T) {
	userID := uuid.New()
	g := makeGoal("audited", 12000, 0, 1)
	result := &entity.GoalAllocationResult{
		UserID:       userID,
		CalculatedAt: testNow,
		Allocations: []entity.GoalAllocation{
			{GoalID: g.ID, MonthlyAllocation: 500, IsAchievable: true},
		},
		SafetyCheck: entity.SafetyCheck{Passed: true},
	}

	t.Run("appends one record per allocation", func(t *testing.T) {
		history := &fakeHistoryRepo{}
		uc := NewSaveHistoryUseCase(history)

		err := uc.Execute(context.Background(), SaveHistoryInput{
			UserID: userID,
			Result: result,
			Goals:  []*entity.Goal{g},
			Reason: entity.ReasonIncomeIncreased,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history.appended) != 1 || len(history.appended[0]) != 1 {
			t.Fatalf("expected 1 batch of 1 record, got %v", history.appended)
		}
		if history.appended[0][0].Reason != entity.ReasonIncomeIncreased {
			t.Errorf("expected reason %q, got %q", entity.ReasonIncomeIncreased, history.appended[0][0].Reason)
		}
	})

	t.Run("rejects an unknown reason", func(t *testing.T) {
		uc := NewSaveHistoryUseCase(&fakeHistoryRepo{})
		err := uc.Execute(context.Background(), SaveHistoryInput{
			UserID: userID,
			Result: result,
			Goals:  []*entity.Goal{g},
			Reason: entity.AllocationReason("vibes"),
		})
		if err != domainerror.ErrInvalidAllocationReason {
			t.Fatalf("expected ErrInvalidAllocationReason, got %v", err)
		}
	})
}
