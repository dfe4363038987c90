package allocation

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

func TestGetHistoryUseCase(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()
	goalID := uuid.New()
	otherGoal := uuid.New()

	history := &fakeHistoryRepo{}
	history.appended = append(history.appended, []*entity.AllocationHistory{
		{ID: uuid.New(), UserID: userID, GoalID: goalID, MonthlyAllocation: 500},
		{ID: uuid.New(), UserID: userID, GoalID: otherGoal, MonthlyAllocation: 300},
		{ID: uuid.New(), UserID: otherUser, GoalID: goalID, MonthlyAllocation: 900},
	})

	uc := NewGetHistoryUseCase(history)

	t.Run("user-scoped trail", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), GetHistoryInput{UserID: userID, Limit: 50})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.History) != 2 {
			t.Fatalf("expected 2 records, got %d", len(output.History))
		}
	})

	t.Run("goal-scoped trail drops other users' records", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), GetHistoryInput{
			UserID: userID,
			GoalID: &goalID,
			Limit:  50,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.History) != 1 {
			t.Fatalf("expected 1 record, got %d", len(output.History))
		}
		if output.History[0].GoalID != goalID || output.History[0].UserID != userID {
			t.Error("expected only the caller's record for the goal")
		}
	})
}
