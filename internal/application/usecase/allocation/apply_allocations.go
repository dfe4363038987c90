package allocation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
)

// ApplyAllocationsInput represents the input for writing computed
// allocations back to the goal store.
type ApplyAllocationsInput struct {
	UserID      uuid.UUID
	Allocations []entity.GoalAllocation
}

// ApplyAllocationsOutput reports which goals were updated and which writes
// were rejected as stale.
type ApplyAllocationsOutput struct {
	Updated []uuid.UUID
	Stale   []uuid.UUID
}

// ApplyAllocationsUseCase writes each computed monthly_allocation to its
// goal. Goals may be recalculated concurrently by the scheduled
// reconciliation job and by a user-initiated run, so every write carries
// the snapshot's updated_at: a write against a goal that moved past the
// snapshot is rejected and reported, and the caller re-fetches and retries.
type ApplyAllocationsUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.AllocationCache
}

// NewApplyAllocationsUseCase creates a new ApplyAllocationsUseCase instance.
func NewApplyAllocationsUseCase(goalRepo adapter.GoalRepository, cache adapter.AllocationCache) *ApplyAllocationsUseCase {
	return &ApplyAllocationsUseCase{
		goalRepo: goalRepo,
		cache:    cache,
	}
}

// Execute applies the allocations. Stale snapshots are collected rather
// than aborting the batch; any other persistence failure stops the run and
// is returned as a PersistenceError so the caller can retry the writes
// without recomputing.
func (uc *ApplyAllocationsUseCase) Execute(ctx context.Context, input ApplyAllocationsInput) (*ApplyAllocationsOutput, error) {
	output := &ApplyAllocationsOutput{}

	for i := range input.Allocations {
		a := &input.Allocations[i]
		err := uc.goalRepo.UpdateGoalAllocation(ctx, input.UserID, a.GoalID, a.MonthlyAllocation, a.SnapshotUpdatedAt)
		if err != nil {
			if errors.Is(err, domainerror.ErrStaleGoalSnapshot) {
				output.Stale = append(output.Stale, a.GoalID)
				continue
			}
			return output, domainerror.NewPersistenceError(
				domainerror.ErrCodeGoalWriteFailed,
				"update goal allocation",
				err,
			)
		}
		output.Updated = append(output.Updated, a.GoalID)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			slog.Warn("failed to invalidate allocation cache", "user_id", input.UserID, "error", err)
		}
	}

	return output, nil
}
