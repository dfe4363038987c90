// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/application/usecase/allocation"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID

	// ActiveOnly restricts the listing to active goals.
	ActiveOnly bool
}

// GoalListItem pairs a goal with derived presentation fields.
type GoalListItem struct {
	Goal            *entity.Goal
	ProgressPercent float64
	RemainingAmount float64

	// Blocked reports whether an incomplete prerequisite currently
	// throttles this goal.
	Blocked bool
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []GoalListItem
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	var goals []*entity.Goal
	var err error
	if input.ActiveOnly {
		goals, err = uc.goalRepo.ListActiveGoals(ctx, input.UserID)
	} else {
		goals, err = uc.goalRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	index := allocation.BuildGoalIndex(goals)

	output := &ListGoalsOutput{
		Goals: make([]GoalListItem, 0, len(goals)),
	}
	for _, g := range goals {
		output.Goals = append(output.Goals, GoalListItem{
			Goal:            g,
			ProgressPercent: g.ProgressPercent(),
			RemainingAmount: g.RemainingAmount(),
			Blocked:         !allocation.CanGoalStart(g, index),
		})
	}
	return output, nil
}
