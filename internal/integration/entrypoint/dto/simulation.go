// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// SimulationPriorityChange overrides one goal's priority in a scenario.
type SimulationPriorityChange struct {
	GoalID      string `json:"goal_id" binding:"required,uuid"`
	NewPriority int    `json:"new_priority" binding:"required,min=1,max=10"`
}

// SimulationNewGoal describes a hypothetical goal to add in a scenario.
type SimulationNewGoal struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Type         string  `json:"type" binding:"required"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	Priority     int     `json:"priority" binding:"required,min=1,max=10"`

	Deadline      *string `json:"deadline,omitempty"`
	MinAllocation float64 `json:"min_allocation,omitempty" binding:"omitempty,gte=0"`
}

// SimulateRequest represents the request body for a what-if simulation.
type SimulateRequest struct {
	Name string `json:"name,omitempty" binding:"omitempty,max=255"`

	IncomeChange  float64 `json:"income_change,omitempty"`
	ExpenseChange float64 `json:"expense_change,omitempty"`

	NewGoal         *SimulationNewGoal         `json:"new_goal,omitempty"`
	RemoveGoalID    *string                    `json:"remove_goal_id,omitempty" binding:"omitempty,uuid"`
	PriorityChanges []SimulationPriorityChange `json:"priority_changes,omitempty" binding:"omitempty,dive"`
}

// SimulationResponse wraps one simulation run. The entity already carries
// its wire shape.
type SimulationResponse struct {
	Result *entity.SimulationResult `json:"result"`
}

// ToScenario converts the request to a domain scenario owned by userID.
func (r SimulateRequest) ToScenario(userID uuid.UUID) (entity.SimulationScenario, error) {
	scenario := entity.SimulationScenario{
		Name:          r.Name,
		IncomeChange:  r.IncomeChange,
		ExpenseChange: r.ExpenseChange,
	}

	if r.RemoveGoalID != nil {
		removeID, err := uuid.Parse(*r.RemoveGoalID)
		if err != nil {
			return scenario, fmt.Errorf("invalid remove_goal_id: %w", err)
		}
		scenario.RemoveGoalID = &removeID
	}

	if r.NewGoal != nil {
		goalType := entity.GoalType(r.NewGoal.Type)
		if !entity.IsValidGoalType(goalType) {
			return scenario, fmt.Errorf("invalid goal type: %s", r.NewGoal.Type)
		}
		newGoal := entity.NewGoal(userID, r.NewGoal.Name, goalType, r.NewGoal.TargetAmount, r.NewGoal.Priority)
		newGoal.MinAllocation = r.NewGoal.MinAllocation
		if r.NewGoal.Deadline != nil {
			deadline, err := time.Parse("2006-01-02", *r.NewGoal.Deadline)
			if err != nil {
				return scenario, fmt.Errorf("invalid deadline: %w", err)
			}
			newGoal.Deadline = &deadline
		}
		scenario.NewGoal = newGoal
	}

	for _, change := range r.PriorityChanges {
		goalID, err := uuid.Parse(change.GoalID)
		if err != nil {
			return scenario, fmt.Errorf("invalid priority change goal_id: %w", err)
		}
		scenario.Priorities = append(scenario.Priorities, entity.PriorityChange{
			GoalID:      goalID,
			NewPriority: change.NewPriority,
		})
	}

	return scenario, nil
}
