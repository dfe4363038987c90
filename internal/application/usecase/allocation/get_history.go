package allocation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// GetHistoryInput represents the input for reading the audit trail. When
// GoalID is set the trail is restricted to that goal.
type GetHistoryInput struct {
	UserID uuid.UUID
	GoalID *uuid.UUID
	Limit  int
	Offset int
}

// GetHistoryOutput represents the output of reading the audit trail.
type GetHistoryOutput struct {
	History []*entity.AllocationHistory
}

// GetHistoryUseCase reads the append-only allocation audit trail.
type GetHistoryUseCase struct {
	historyRepo adapter.AllocationHistoryRepository
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(historyRepo adapter.AllocationHistoryRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		historyRepo: historyRepo,
	}
}

// Execute reads the trail, newest first.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	var records []*entity.AllocationHistory
	var err error
	if input.GoalID != nil {
		records, err = uc.historyRepo.FindByGoalID(ctx, *input.GoalID, input.Limit, input.Offset)
	} else {
		records, err = uc.historyRepo.FindByUserID(ctx, input.UserID, input.Limit, input.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read allocation history: %w", err)
	}

	// The goal-scoped query is not user-scoped at the store level; drop
	// records that belong to someone else.
	filtered := records[:0]
	for _, record := range records {
		if record.UserID == input.UserID {
			filtered = append(filtered, record)
		}
	}
	return &GetHistoryOutput{History: filtered}, nil
}
