package entity

import "github.com/google/uuid"

// PriorityChange overrides one goal's priority inside a scenario.
type PriorityChange struct {
	GoalID      uuid.UUID `json:"goal_id"`
	NewPriority int       `json:"new_priority"`
}

// SimulationScenario is a named hypothetical delta applied to a cloned
// goal set. Scenarios are never persisted against real goals.
type SimulationScenario struct {
	Name string `json:"name"`

	IncomeChange  float64 `json:"income_change"`
	ExpenseChange float64 `json:"expense_change"`

	NewGoal      *Goal            `json:"new_goal,omitempty"`
	RemoveGoalID *uuid.UUID       `json:"remove_goal_id,omitempty"`
	Priorities   []PriorityChange `json:"priority_changes,omitempty"`
}

// ImpactSummary condenses the before/after diff of a simulation.
type ImpactSummary struct {
	GoalsImproved int `json:"goals_improved"`
	GoalsWorsened int `json:"goals_worsened"`

	// NetMonthsSaved sums months-to-complete deltas across goals; positive
	// means the scenario finishes goals sooner overall.
	NetMonthsSaved int `json:"net_months_saved"`

	Recommendation string `json:"recommendation"`
}

// SimulationResult pairs the baseline run with the hypothetical run.
type SimulationResult struct {
	Scenario SimulationScenario    `json:"scenario"`
	Before   *GoalAllocationResult `json:"before"`
	After    *GoalAllocationResult `json:"after"`
	Impact   ImpactSummary         `json:"impact_summary"`
}
