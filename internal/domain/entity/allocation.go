package entity

import (
	"time"

	"github.com/google/uuid"
)

// ComfortLevel classifies how much room the user has left after funding
// their goals.
type ComfortLevel string

const (
	ComfortLevelCritical    ComfortLevel = "critical"
	ComfortLevelTight       ComfortLevel = "tight"
	ComfortLevelComfortable ComfortLevel = "comfortable"
	ComfortLevelExcellent   ComfortLevel = "excellent"
)

// UrgencyBreakdown holds the normalized sub-scores that make up a goal's
// urgency. All values are in [0,1].
type UrgencyBreakdown struct {
	PriorityScore      float64 `json:"priority_score"`
	TimeProximityScore float64 `json:"time_proximity_score"`
	ProgressGapScore   float64 `json:"progress_gap_score"`
	UrgencyScore       float64 `json:"urgency_score"`
}

// GoalAllocation is the engine's per-goal decision. It is computed, not
// persisted as-is; the audit trail goes through AllocationHistory.
type GoalAllocation struct {
	GoalID   uuid.UUID `json:"goal_id"`
	GoalName string    `json:"goal_name"`

	RemainingAmount   float64 `json:"remaining_amount"`
	MonthlyAllocation float64 `json:"monthly_allocation"`

	// MonthsToComplete is the projected number of months to reach the
	// target at MonthlyAllocation. 0 when the allocation is zero and the
	// goal is not already complete.
	MonthsToComplete       int        `json:"months_to_complete"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date,omitempty"`

	Urgency           UrgencyBreakdown `json:"urgency"`
	DependencyFactor  float64          `json:"dependency_factor"`
	AllocationPercent float64          `json:"allocation_percent"`

	IsAchievable bool     `json:"is_achievable"`
	Warnings     []string `json:"warnings,omitempty"`

	// SnapshotUpdatedAt carries the UpdatedAt of the goal snapshot this
	// allocation was computed from; the guarded write uses it to reject
	// stale applies.
	SnapshotUpdatedAt time.Time `json:"snapshot_updated_at"`
}

// SafetyCheck is the Safety Validator's verdict. A failed check is a
// first-class outcome, not an error.
type SafetyCheck struct {
	Passed              bool         `json:"passed"`
	RemainingForLife    float64      `json:"remaining_for_life"`
	MinimumLivingBudget float64      `json:"minimum_living_budget"`
	Shortfall           float64      `json:"shortfall"`
	ComfortLevel        ComfortLevel `json:"comfort_level"`

	// ScaleFactor is the common factor applied to every allocation when
	// the living budget would otherwise be violated. 1.0 when untouched.
	ScaleFactor float64 `json:"scale_factor"`
}

// GoalAllocationResult is the full output of one allocation run.
type GoalAllocationResult struct {
	UserID       uuid.UUID `json:"user_id"`
	CalculatedAt time.Time `json:"calculated_at"`

	Allocations []GoalAllocation `json:"allocations"`

	AvailableForGoals float64 `json:"available_for_goals"`
	TotalAllocated    float64 `json:"total_allocated"`

	// RemainingBudget is money that stayed unallocated after every goal was
	// either capped or fully funded. Reported, never silently spent.
	RemainingBudget float64 `json:"remaining_budget"`

	SafetyCheck SafetyCheck  `json:"safety_check"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// FinancialProfile is the snapshot of a user's monthly finances the engine
// computes against. Sourced from an external collaborator.
type FinancialProfile struct {
	UserID              uuid.UUID
	MonthlyIncome       float64
	FixedExpenses       float64
	MinimumLivingBudget float64
	UpdatedAt           time.Time
}
