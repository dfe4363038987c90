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

// UpdateGoalInput represents the input for goal update. All fields are
// optional; only provided ones are applied.
type UpdateGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID

	Name          *string
	TargetAmount  *float64
	Priority      *int
	Deadline      *time.Time
	ClearDeadline bool

	MinAllocation   *float64
	IsFlexible      *bool
	AutoAdjust      *bool
	Status          *entity.GoalStatus
	DependsOnGoalID *uuid.UUID
	ClearDependency bool
	LinkedAccountID *string
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal

	// NeedsRecalculation is set when a change affects the allocation
	// decision (priority, target, deadline, dependency, status) and the
	// goal opted into auto adjustment.
	NeedsRecalculation bool
	Reason             entity.AllocationReason
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.AllocationCache
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// WithCache makes the use case drop the user's cached allocation result
// after a successful write.
func (uc *UpdateGoalUseCase) WithCache(cache adapter.AllocationCache) *UpdateGoalUseCase {
	uc.cache = cache
	return uc
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
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
			"not authorized to modify this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	needsRecalculation := false
	reason := entity.ReasonManualAdjustment

	if input.Name != nil {
		goal.Name = *input.Name
	}

	if input.TargetAmount != nil {
		if *input.TargetAmount <= 0 {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetAmount,
				"target amount must be greater than zero",
				domainerror.ErrInvalidTargetAmount,
			)
		}
		goal.TargetAmount = *input.TargetAmount
		needsRecalculation = true
	}

	if input.Priority != nil {
		if *input.Priority < entity.PriorityHighest || *input.Priority > entity.PriorityLowest {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidPriority,
				"priority must be between 1 and 10",
				domainerror.ErrInvalidPriority,
			)
		}
		if goal.Priority != *input.Priority {
			goal.Priority = *input.Priority
			needsRecalculation = true
			reason = entity.ReasonPriorityChanged
		}
	}

	if input.ClearDeadline {
		goal.Deadline = nil
		needsRecalculation = true
	} else if input.Deadline != nil {
		goal.Deadline = input.Deadline
		needsRecalculation = true
	}

	if input.MinAllocation != nil {
		goal.MinAllocation = *input.MinAllocation
		needsRecalculation = true
	}

	if input.IsFlexible != nil {
		goal.IsFlexible = *input.IsFlexible
	}

	if input.AutoAdjust != nil {
		goal.AutoAdjust = *input.AutoAdjust
	}

	if input.Status != nil {
		if !entity.IsValidGoalStatus(*input.Status) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"unknown goal status",
				nil,
			)
		}
		goal.Status = *input.Status
		needsRecalculation = true
	}

	if input.ClearDependency {
		goal.DependsOnGoalID = nil
		needsRecalculation = true
	} else if input.DependsOnGoalID != nil {
		if *input.DependsOnGoalID == goal.ID {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeSelfDependency,
				"goal cannot depend on itself",
				domainerror.ErrSelfDependency,
			)
		}
		goal.DependsOnGoalID = input.DependsOnGoalID
		needsRecalculation = true
	}

	if input.LinkedAccountID != nil {
		goal.LinkedAccountID = input.LinkedAccountID
	}

	// Reaching the target completes the goal regardless of which field
	// triggered the update.
	if goal.Status == entity.GoalStatusActive && goal.CurrentAmount >= goal.TargetAmount {
		goal.Status = entity.GoalStatusCompleted
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, input.UserID)
	}

	return &UpdateGoalOutput{
		Goal:               goal,
		NeedsRecalculation: needsRecalculation && goal.AutoAdjust,
		Reason:             reason,
	}, nil
}
