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

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	Type         entity.GoalType
	TargetAmount float64
	Priority     int

	Deadline        *time.Time
	CurrentAmount   float64
	MinAllocation   float64
	IsFlexible      *bool // Optional, defaults to true
	AutoAdjust      *bool // Optional, defaults to true
	DependsOnGoalID *uuid.UUID
	LinkedAccountID *string
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	cache    adapter.AllocationCache
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// WithCache makes the use case drop the user's cached allocation result
// after a successful write. A new goal makes any cached plan stale.
func (uc *CreateGoalUseCase) WithCache(cache adapter.AllocationCache) *CreateGoalUseCase {
	uc.cache = cache
	return uc
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.TargetAmount <= 0 {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	if input.Priority < entity.PriorityHighest || input.Priority > entity.PriorityLowest {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidPriority,
			"priority must be between 1 and 10",
			domainerror.ErrInvalidPriority,
		)
	}

	if !entity.IsValidGoalType(input.Type) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"unknown goal type",
			domainerror.ErrInvalidGoalType,
		)
	}

	// Validate the dependency edge: it must point at an existing goal of the
	// same user. The engine tolerates dangling edges, but there is no reason
	// to accept one knowingly.
	if input.DependsOnGoalID != nil {
		dep, err := uc.goalRepo.FindByID(ctx, *input.DependsOnGoalID)
		if err != nil {
			if errors.Is(err, domainerror.ErrGoalNotFound) {
				return nil, domainerror.NewGoalError(
					domainerror.ErrCodeDependencyNotFound,
					"dependency goal not found",
					domainerror.ErrDependencyNotFound,
				)
			}
			return nil, fmt.Errorf("failed to resolve dependency goal: %w", err)
		}
		if dep.UserID != input.UserID {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeUnauthorizedGoalAccess,
				"dependency goal belongs to another user",
				domainerror.ErrUnauthorizedGoalAccess,
			)
		}
	}

	goal := entity.NewGoal(input.UserID, input.Name, input.Type, input.TargetAmount, input.Priority)
	goal.Deadline = input.Deadline
	goal.CurrentAmount = input.CurrentAmount
	goal.MinAllocation = input.MinAllocation
	goal.DependsOnGoalID = input.DependsOnGoalID
	goal.LinkedAccountID = input.LinkedAccountID

	goal.IsFlexible = true
	if input.IsFlexible != nil {
		goal.IsFlexible = *input.IsFlexible
	}
	goal.AutoAdjust = true
	if input.AutoAdjust != nil {
		goal.AutoAdjust = *input.AutoAdjust
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, input.UserID)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
