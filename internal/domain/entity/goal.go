// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalType classifies what a financial goal is saving toward.
type GoalType string

const (
	GoalTypeEmergencyFund      GoalType = "emergency_fund"
	GoalTypeDebtPayoff         GoalType = "debt_payoff"
	GoalTypeSavings            GoalType = "savings_goal"
	GoalTypeRetirement         GoalType = "retirement"
	GoalTypeEducation          GoalType = "education"
	GoalTypeHomePurchase       GoalType = "home_purchase"
	GoalTypeVehicle            GoalType = "vehicle"
	GoalTypeVacation           GoalType = "vacation"
	GoalTypeWedding            GoalType = "wedding"
	GoalTypeGeneralImprovement GoalType = "general_improvement"
	GoalTypeOther              GoalType = "other"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Priority bounds. 1 is the most important.
const (
	PriorityHighest = 1
	PriorityLowest  = 10
)

// Goal represents a financial target owned by exactly one user.
type Goal struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Name string
	Type GoalType

	TargetAmount  float64
	CurrentAmount float64
	StartDate     time.Time
	Deadline      *time.Time

	// Priority ranks the goal against the user's other goals, 1-10,
	// 1 = most important.
	Priority int

	// Engine-controlled fields.
	IsFlexible        bool
	AutoAdjust        bool
	MinAllocation     float64
	MonthlyAllocation float64

	// DependsOnGoalID points at another goal of the same user that should
	// complete (or progress far enough) before this goal is fully funded.
	// User input: the resulting graph may contain cycles or dangling edges.
	DependsOnGoalID *uuid.UUID

	// LinkedAccountID identifies an external savings account whose balance
	// is reconciled into CurrentAmount by the scheduled sync job.
	LinkedAccountID *string

	Status    GoalStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGoal creates a new active Goal entity.
func NewGoal(userID uuid.UUID, name string, goalType GoalType, targetAmount float64, priority int) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Type:         goalType,
		TargetAmount: targetAmount,
		Priority:     priority,
		StartDate:    now,
		Status:       GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RemainingAmount returns how much is still missing to reach the target.
// Never negative.
func (g *Goal) RemainingAmount() float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProgressPercent returns completion progress in [0,100].
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	progress := g.CurrentAmount / g.TargetAmount * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// IsCompleted reports whether the goal has reached its target.
func (g *Goal) IsCompleted() bool {
	return g.Status == GoalStatusCompleted || g.CurrentAmount >= g.TargetAmount
}

// Clone returns a deep copy of the goal. Simulation works on clones so the
// real goal set is never mutated.
func (g *Goal) Clone() *Goal {
	clone := *g
	if g.Deadline != nil {
		deadline := *g.Deadline
		clone.Deadline = &deadline
	}
	if g.DependsOnGoalID != nil {
		dep := *g.DependsOnGoalID
		clone.DependsOnGoalID = &dep
	}
	if g.LinkedAccountID != nil {
		account := *g.LinkedAccountID
		clone.LinkedAccountID = &account
	}
	return &clone
}

// IsValidGoalType reports whether t is one of the known goal types.
func IsValidGoalType(t GoalType) bool {
	switch t {
	case GoalTypeEmergencyFund, GoalTypeDebtPayoff, GoalTypeSavings,
		GoalTypeRetirement, GoalTypeEducation, GoalTypeHomePurchase,
		GoalTypeVehicle, GoalTypeVacation, GoalTypeWedding,
		GoalTypeGeneralImprovement, GoalTypeOther:
		return true
	}
	return false
}

// IsValidGoalStatus reports whether s is one of the known lifecycle states.
func IsValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}
