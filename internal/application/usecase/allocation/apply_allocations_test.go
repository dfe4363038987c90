package allocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
)

func TestApplyAllocationsUseCase(t *testing.T) {
	userID := uuid.New()

	t.Run("writes every allocation and invalidates the cache", func(t *testing.T) {
		a := makeGoal("first", 10000, 0, 1)
		b := makeGoal("second", 5000, 0, 3)
		a.UserID = userID
		b.UserID = userID
		repo := newFakeGoalRepo(a, b)
		c := &fakeCache{}

		uc := NewApplyAllocationsUseCase(repo, c)
		output, err := uc.Execute(context.Background(), ApplyAllocationsInput{
			UserID: userID,
			Allocations: []entity.GoalAllocation{
				{GoalID: a.ID, MonthlyAllocation: 800, SnapshotUpdatedAt: a.UpdatedAt},
				{GoalID: b.ID, MonthlyAllocation: 200, SnapshotUpdatedAt: b.UpdatedAt},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Updated) != 2 || len(output.Stale) != 0 {
			t.Fatalf("expected 2 updated and 0 stale, got %d and %d", len(output.Updated), len(output.Stale))
		}
		if repo.appliedAmounts[a.ID] != 800 || repo.appliedAmounts[b.ID] != 200 {
			t.Errorf("expected amounts 800/200, got %.2f/%.2f",
				repo.appliedAmounts[a.ID], repo.appliedAmounts[b.ID])
		}
		if len(c.invalidated) != 1 || c.invalidated[0] != userID {
			t.Error("expected the user's cache entry to be invalidated")
		}
	})

	t.Run("stale snapshots are collected, not fatal", func(t *testing.T) {
		a := makeGoal("fresh", 10000, 0, 1)
		b := makeGoal("moved", 5000, 0, 3)
		a.UserID = userID
		b.UserID = userID
		repo := newFakeGoalRepo(a, b)
		repo.updateAllocation = func(goalID uuid.UUID, _ float64, _ time.Time) error {
			if goalID == b.ID {
				return domainerror.ErrStaleGoalSnapshot
			}
			return nil
		}

		uc := NewApplyAllocationsUseCase(repo, nil)
		output, err := uc.Execute(context.Background(), ApplyAllocationsInput{
			UserID: userID,
			Allocations: []entity.GoalAllocation{
				{GoalID: a.ID, MonthlyAllocation: 800, SnapshotUpdatedAt: a.UpdatedAt},
				{GoalID: b.ID, MonthlyAllocation: 200, SnapshotUpdatedAt: b.UpdatedAt},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Updated) != 1 || output.Updated[0] != a.ID {
			t.Errorf("expected only the fresh goal updated, got %v", output.Updated)
		}
		if len(output.Stale) != 1 || output.Stale[0] != b.ID {
			t.Errorf("expected the moved goal reported stale, got %v", output.Stale)
		}
	})

	t.Run("other write failures abort the batch", func(t *testing.T) {
		a := makeGoal("first", 10000, 0, 1)
		b := makeGoal("second", 5000, 0, 3)
		a.UserID = userID
		b.UserID = userID
		repo := newFakeGoalRepo(a, b)
		repo.updateAllocation = func(goalID uuid.UUID, _ float64, _ time.Time) error {
			if goalID == a.ID {
				return errors.New("connection reset")
			}
			return nil
		}

		uc := NewApplyAllocationsUseCase(repo, nil)
		output, err := uc.Execute(context.Background(), ApplyAllocationsInput{
			UserID: userID,
			Allocations: []entity.GoalAllocation{
				{GoalID: a.ID, MonthlyAllocation: 800, SnapshotUpdatedAt: a.UpdatedAt},
				{GoalID: b.ID, MonthlyAllocation: 200, SnapshotUpdatedAt: b.UpdatedAt},
			},
		})

		if !domainerror.IsPersistenceError(err) {
			t.Fatalf("expected a persistence error, got %v", err)
		}
		if len(output.Updated) != 0 {
			t.Errorf("expected no updates recorded, got %v", output.Updated)
		}
		if _, applied := repo.appliedAmounts[b.ID]; applied {
			t.Error("expected the batch to stop before the second goal")
		}
	})

	t.Run("rejects a write against another user's goal", func(t *testing.T) {
		foreign := makeGoal("someone elses house", 50000, 0, 2)
		repo := newFakeGoalRepo(foreign)
		c := &fakeCache{}

		uc := NewApplyAllocationsUseCase(repo, c)
		output, err := uc.Execute(context.Background(), ApplyAllocationsInput{
			UserID: userID,
			Allocations: []entity.GoalAllocation{
				{GoalID: foreign.ID, MonthlyAllocation: 9999, SnapshotUpdatedAt: foreign.UpdatedAt},
			},
		})

		if !domainerror.IsPersistenceError(err) {
			t.Fatalf("expected a persistence error, got %v", err)
		}
		if !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Fatalf("expected goal-not-found underneath, got %v", err)
		}
		if len(output.Updated) != 0 {
			t.Errorf("expected no updates recorded, got %v", output.Updated)
		}
		if len(repo.appliedAmounts) != 0 {
			t.Error("expected no allocation written")
		}
	})

	t.Run("empty batch still invalidates the cache", func(t *testing.T) {
		repo := newFakeGoalRepo()
		c := &fakeCache{}

		uc := NewApplyAllocationsUseCase(repo, c)
		output, err := uc.Execute(context.Background(), ApplyAllocationsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Updated) != 0 || len(output.Stale) != 0 {
			t.Error("expected an empty output")
		}
		if len(c.invalidated) != 1 {
			t.Error("expected a cache invalidation")
		}
	})
}
