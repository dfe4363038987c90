// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/goal-planner/backend/internal/application/usecase/goal"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Type         string  `json:"type" binding:"required"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0"`
	Priority     int     `json:"priority" binding:"required,min=1,max=10"`

	CurrentAmount   float64 `json:"current_amount,omitempty" binding:"omitempty,gte=0"`
	Deadline        *string `json:"deadline,omitempty"`
	MinAllocation   float64 `json:"min_allocation,omitempty" binding:"omitempty,gte=0"`
	IsFlexible      *bool   `json:"is_flexible,omitempty"`
	AutoAdjust      *bool   `json:"auto_adjust,omitempty"`
	DependsOnGoalID *string `json:"depends_on_goal_id,omitempty" binding:"omitempty,uuid"`
	LinkedAccountID *string `json:"linked_account_id,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,max=255"`
	TargetAmount *float64 `json:"target_amount,omitempty" binding:"omitempty,gt=0"`
	Priority     *int     `json:"priority,omitempty" binding:"omitempty,min=1,max=10"`

	Deadline      *string `json:"deadline,omitempty"`
	ClearDeadline bool    `json:"clear_deadline,omitempty"`

	MinAllocation   *float64 `json:"min_allocation,omitempty" binding:"omitempty,gte=0"`
	IsFlexible      *bool    `json:"is_flexible,omitempty"`
	AutoAdjust      *bool    `json:"auto_adjust,omitempty"`
	Status          *string  `json:"status,omitempty" binding:"omitempty,oneof=active completed paused cancelled"`
	DependsOnGoalID *string  `json:"depends_on_goal_id,omitempty" binding:"omitempty,uuid"`
	ClearDependency bool     `json:"clear_dependency,omitempty"`
	LinkedAccountID *string  `json:"linked_account_id,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Name string `json:"name"`
	Type string `json:"type"`

	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Priority      int     `json:"priority"`

	StartDate string  `json:"start_date"`
	Deadline  *string `json:"deadline,omitempty"`

	IsFlexible        bool    `json:"is_flexible"`
	AutoAdjust        bool    `json:"auto_adjust"`
	MinAllocation     float64 `json:"min_allocation"`
	MonthlyAllocation float64 `json:"monthly_allocation"`

	DependsOnGoalID *string `json:"depends_on_goal_id,omitempty"`
	LinkedAccountID *string `json:"linked_account_id,omitempty"`

	ProgressPercent float64 `json:"progress_percent"`
	RemainingAmount float64 `json:"remaining_amount"`
	Blocked         bool    `json:"blocked"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	response := GoalResponse{
		ID:                g.ID.String(),
		UserID:            g.UserID.String(),
		Name:              g.Name,
		Type:              string(g.Type),
		TargetAmount:      g.TargetAmount,
		CurrentAmount:     g.CurrentAmount,
		Priority:          g.Priority,
		StartDate:         g.StartDate.Format("2006-01-02"),
		IsFlexible:        g.IsFlexible,
		AutoAdjust:        g.AutoAdjust,
		MinAllocation:     g.MinAllocation,
		MonthlyAllocation: g.MonthlyAllocation,
		LinkedAccountID:   g.LinkedAccountID,
		ProgressPercent:   g.ProgressPercent(),
		RemainingAmount:   g.RemainingAmount(),
		Status:            string(g.Status),
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}

	if g.Deadline != nil {
		deadline := g.Deadline.Format("2006-01-02")
		response.Deadline = &deadline
	}
	if g.DependsOnGoalID != nil {
		dep := g.DependsOnGoalID.String()
		response.DependsOnGoalID = &dep
	}

	return response
}

// ToGoalListResponse converts list use case output to a GoalListResponse DTO.
func ToGoalListResponse(items []goal.GoalListItem) GoalListResponse {
	response := GoalListResponse{
		Goals: make([]GoalResponse, 0, len(items)),
	}
	for _, item := range items {
		goalResponse := ToGoalResponse(item.Goal)
		goalResponse.Blocked = item.Blocked
		response.Goals = append(response.Goals, goalResponse)
	}
	return response
}
