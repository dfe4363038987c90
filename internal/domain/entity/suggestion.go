package entity

import "github.com/google/uuid"

// SuggestionType identifies the action a suggestion recommends.
type SuggestionType string

const (
	SuggestionChangePriority SuggestionType = "change_priority"
	SuggestionRemoveGoal     SuggestionType = "remove_goal"
	SuggestionAdjustDeadline SuggestionType = "adjust_deadline"
	SuggestionIncreaseIncome SuggestionType = "increase_income"
	SuggestionReduceExpenses SuggestionType = "reduce_expenses"
)

// SuggestionPriority ranks suggestions for display.
type SuggestionPriority string

const (
	SuggestionPriorityHigh   SuggestionPriority = "high"
	SuggestionPriorityMedium SuggestionPriority = "medium"
	SuggestionPriorityLow    SuggestionPriority = "low"
)

// Suggestion is an actionable recommendation derived from the allocation
// outcome. The message is structural, not generated prose.
type Suggestion struct {
	Type     SuggestionType     `json:"type"`
	GoalID   *uuid.UUID         `json:"goal_id,omitempty"`
	Message  string             `json:"message"`
	Impact   string             `json:"impact"`
	Priority SuggestionPriority `json:"priority"`
}
