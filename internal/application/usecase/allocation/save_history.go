package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
)

// SaveHistoryInput represents the input for persisting an allocation run's
// audit trail.
type SaveHistoryInput struct {
	UserID uuid.UUID
	Result *entity.GoalAllocationResult
	Goals  []*entity.Goal
	Reason entity.AllocationReason
}

// SaveHistoryUseCase appends audit records for an already-computed
// allocation result. Kept separate from the calculation so callers can
// retry a failed write without recomputing.
type SaveHistoryUseCase struct {
	historyRepo adapter.AllocationHistoryRepository
}

// NewSaveHistoryUseCase creates a new SaveHistoryUseCase instance.
func NewSaveHistoryUseCase(historyRepo adapter.AllocationHistoryRepository) *SaveHistoryUseCase {
	return &SaveHistoryUseCase{
		historyRepo: historyRepo,
	}
}

// Execute appends the audit records.
func (uc *SaveHistoryUseCase) Execute(ctx context.Context, input SaveHistoryInput) error {
	if !entity.IsValidAllocationReason(input.Reason) {
		return domainerror.ErrInvalidAllocationReason
	}

	index := BuildGoalIndex(input.Goals)
	records := BuildHistoryRecords(input.UserID, input.Result, index, input.Reason)
	if err := uc.historyRepo.Append(ctx, records); err != nil {
		return domainerror.NewPersistenceError(
			domainerror.ErrCodeHistoryWriteFailed,
			"append allocation history",
			err,
		)
	}
	return nil
}

// BuildHistoryRecords converts an allocation result into append-only audit
// records, one per goal.
func BuildHistoryRecords(
	userID uuid.UUID,
	result *entity.GoalAllocationResult,
	index GoalIndex,
	reason entity.AllocationReason,
) []*entity.AllocationHistory {
	confidence := ConfidenceScore(result)
	now := time.Now().UTC()

	records := make([]*entity.AllocationHistory, 0, len(result.Allocations))
	for i := range result.Allocations {
		a := &result.Allocations[i]

		previous := 0.0
		if g, ok := index[a.GoalID]; ok {
			previous = g.MonthlyAllocation
		}

		records = append(records, &entity.AllocationHistory{
			ID:                 uuid.New(),
			UserID:             userID,
			GoalID:             a.GoalID,
			CalculationDate:    result.CalculatedAt,
			MonthlyAllocation:  a.MonthlyAllocation,
			PreviousAllocation: previous,
			Reason:             reason,
			ConfidenceScore:    confidence,
			Warnings:           a.Warnings,
			Metadata: map[string]any{
				"urgency_score":      a.Urgency.UrgencyScore,
				"dependency_factor":  a.DependencyFactor,
				"allocation_percent": a.AllocationPercent,
				"is_achievable":      a.IsAchievable,
			},
			CreatedAt: now,
		})
	}
	return records
}

// ConfidenceScore rates a run in [0,1]: full confidence for a clean run,
// reduced when the safety validator rescaled or goals came out
// unachievable.
func ConfidenceScore(result *entity.GoalAllocationResult) float64 {
	if len(result.Allocations) == 0 {
		return 0
	}

	achievable := 0
	for i := range result.Allocations {
		if result.Allocations[i].IsAchievable {
			achievable++
		}
	}

	score := float64(achievable) / float64(len(result.Allocations))
	if !result.SafetyCheck.Passed {
		score *= 0.5
	}
	return score
}
