// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// CalculateAllocationRequest represents the request body for an allocation
// run. All financial fields are optional overrides of the stored profile.
type CalculateAllocationRequest struct {
	MonthlyIncome       *float64 `json:"monthly_income,omitempty" binding:"omitempty,gte=0"`
	FixedExpenses       *float64 `json:"fixed_expenses,omitempty" binding:"omitempty,gte=0"`
	MinimumLivingBudget *float64 `json:"minimum_living_budget,omitempty" binding:"omitempty,gte=0"`
	SafetyMarginPercent *float64 `json:"safety_margin_percent,omitempty" binding:"omitempty,gte=0,lte=1"`

	PersistHistory bool   `json:"persist_history,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// AllocationResultResponse wraps one allocation run. The entity already
// carries its wire shape.
type AllocationResultResponse struct {
	Result *entity.GoalAllocationResult `json:"result"`
}

// ApplyAllocationItem is one write in an apply batch.
type ApplyAllocationItem struct {
	GoalID            string    `json:"goal_id" binding:"required,uuid"`
	MonthlyAllocation float64   `json:"monthly_allocation" binding:"gte=0"`
	SnapshotUpdatedAt time.Time `json:"snapshot_updated_at" binding:"required"`
}

// ApplyAllocationsRequest represents the request body for writing computed
// allocations back to the goals.
type ApplyAllocationsRequest struct {
	Allocations []ApplyAllocationItem `json:"allocations" binding:"required,min=1,dive"`
}

// ApplyAllocationsResponse reports which goals were updated and which
// writes were rejected because the goal changed after the calculation.
type ApplyAllocationsResponse struct {
	Updated []string `json:"updated"`
	Stale   []string `json:"stale"`
}

// AllocationHistoryEntry represents one audit record in API responses.
type AllocationHistoryEntry struct {
	ID                 string         `json:"id"`
	GoalID             string         `json:"goal_id"`
	CalculationDate    time.Time      `json:"calculation_date"`
	MonthlyAllocation  float64        `json:"monthly_allocation"`
	PreviousAllocation float64        `json:"previous_allocation"`
	Reason             string         `json:"reason"`
	ConfidenceScore    float64        `json:"confidence_score"`
	Warnings           []string       `json:"warnings,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}

// AllocationHistoryResponse represents the response for listing the audit
// trail.
type AllocationHistoryResponse struct {
	History []AllocationHistoryEntry `json:"history"`
}

// ToApplyAllocations converts the apply request to domain allocations.
func (r ApplyAllocationsRequest) ToApplyAllocations() ([]entity.GoalAllocation, error) {
	allocations := make([]entity.GoalAllocation, 0, len(r.Allocations))
	for _, item := range r.Allocations {
		goalID, err := uuid.Parse(item.GoalID)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, entity.GoalAllocation{
			GoalID:            goalID,
			MonthlyAllocation: item.MonthlyAllocation,
			SnapshotUpdatedAt: item.SnapshotUpdatedAt,
		})
	}
	return allocations, nil
}

// ToApplyAllocationsResponse converts apply output IDs to their wire form.
func ToApplyAllocationsResponse(updated, stale []uuid.UUID) ApplyAllocationsResponse {
	response := ApplyAllocationsResponse{
		Updated: make([]string, 0, len(updated)),
		Stale:   make([]string, 0, len(stale)),
	}
	for _, id := range updated {
		response.Updated = append(response.Updated, id.String())
	}
	for _, id := range stale {
		response.Stale = append(response.Stale, id.String())
	}
	return response
}

// ToAllocationHistoryResponse converts audit records to their wire form.
func ToAllocationHistoryResponse(records []*entity.AllocationHistory) AllocationHistoryResponse {
	response := AllocationHistoryResponse{
		History: make([]AllocationHistoryEntry, 0, len(records)),
	}
	for _, record := range records {
		response.History = append(response.History, AllocationHistoryEntry{
			ID:                 record.ID.String(),
			GoalID:             record.GoalID.String(),
			CalculationDate:    record.CalculationDate,
			MonthlyAllocation:  record.MonthlyAllocation,
			PreviousAllocation: record.PreviousAllocation,
			Reason:             string(record.Reason),
			ConfidenceScore:    record.ConfidenceScore,
			Warnings:           record.Warnings,
			Metadata:           record.Metadata,
			CreatedAt:          record.CreatedAt,
		})
	}
	return response
}
