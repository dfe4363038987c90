// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
)

// CancelGoalInput represents the input for cancelling a goal.
type CancelGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// CancelGoalOutput represents the output of cancelling a goal.
type CancelGoalOutput struct {
	Goal *entity.Goal
}

// CancelGoalUseCase transitions a goal to cancelled. Goals are never
// physically deleted; cancelled goals drop out of allocation runs but stay
// in the audit trail.
type CancelGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.AllocationCache
}

// NewCancelGoalUseCase creates a new CancelGoalUseCase instance.
func NewCancelGoalUseCase(goalRepo adapter.GoalRepository) *CancelGoalUseCase {
	return &CancelGoalUseCase{
		goalRepo: goalRepo,
	}
}

// WithCache makes the use case drop the user's cached allocation result
// after a successful write.
func (uc *CancelGoalUseCase) WithCache(cache adapter.AllocationCache) *CancelGoalUseCase {
	uc.cache = cache
	return uc
}

// Execute performs the cancellation.
func (uc *CancelGoalUseCase) Execute(ctx context.Context, input CancelGoalInput) (*CancelGoalOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != input.UserID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to cancel this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	goal.Status = entity.GoalStatusCancelled
	goal.MonthlyAllocation = 0
	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to cancel goal: %w", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, input.UserID)
	}

	return &CancelGoalOutput{Goal: goal}, nil
}
