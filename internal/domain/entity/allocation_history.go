package entity

import (
	"time"

	"github.com/google/uuid"
)

// AllocationReason records why an allocation was (re)computed.
type AllocationReason string

const (
	ReasonInitialCalculation  AllocationReason = "initial_calculation"
	ReasonIncomeIncreased     AllocationReason = "income_increased"
	ReasonIncomeDecreased     AllocationReason = "income_decreased"
	ReasonPriorityChanged     AllocationReason = "priority_changed"
	ReasonDeadlineApproaching AllocationReason = "deadline_approaching"
	ReasonGoalAdded           AllocationReason = "goal_added"
	ReasonGoalRemoved         AllocationReason = "goal_removed"
	ReasonManualAdjustment    AllocationReason = "manual_adjustment"
	ReasonRebalance           AllocationReason = "rebalance"
)

// AllocationHistory is an append-only audit record of one per-goal
// allocation decision. Records are never updated or deleted.
type AllocationHistory struct {
	ID     uuid.UUID
	UserID uuid.UUID
	GoalID uuid.UUID

	CalculationDate    time.Time
	MonthlyAllocation  float64
	PreviousAllocation float64
	Reason             AllocationReason

	// ConfidenceScore in [0,1] reflects how trustworthy the run was:
	// lowered when the safety validator rescaled or goals came out
	// unachievable.
	ConfidenceScore float64

	Warnings []string
	Metadata map[string]any

	CreatedAt time.Time
}

// IsValidAllocationReason reports whether r is a known reason.
func IsValidAllocationReason(r AllocationReason) bool {
	switch r {
	case ReasonInitialCalculation, ReasonIncomeIncreased, ReasonIncomeDecreased,
		ReasonPriorityChanged, ReasonDeadlineApproaching, ReasonGoalAdded,
		ReasonGoalRemoved, ReasonManualAdjustment, ReasonRebalance:
		return true
	}
	return false
}
