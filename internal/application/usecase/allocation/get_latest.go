package allocation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// GetLatestInput represents the input for reading the cached latest result.
type GetLatestInput struct {
	UserID uuid.UUID
}

// GetLatestOutput represents the output of the cached-result read. Result is
// nil when no run has been cached for the user.
type GetLatestOutput struct {
	Result *entity.GoalAllocationResult
}

// GetLatestUseCase serves the dashboard read path: the most recent
// allocation result for a user, straight from the cache. A miss means the
// caller should trigger a calculation; it is not an error.
type GetLatestUseCase struct {
	cache adapter.AllocationCache
}

// NewGetLatestUseCase creates a new GetLatestUseCase instance.
func NewGetLatestUseCase(cache adapter.AllocationCache) *GetLatestUseCase {
	return &GetLatestUseCase{
		cache: cache,
	}
}

// Execute reads the cached result. Cache failures degrade to a miss so the
// dashboard falls through to a fresh calculation instead of erroring.
func (uc *GetLatestUseCase) Execute(ctx context.Context, input GetLatestInput) (*GetLatestOutput, error) {
	if uc.cache == nil {
		return &GetLatestOutput{}, nil
	}

	result, err := uc.cache.GetLatest(ctx, input.UserID)
	if err != nil {
		slog.Warn("failed to read cached allocation result", "user_id", input.UserID, "error", err)
		return &GetLatestOutput{}, nil
	}
	return &GetLatestOutput{Result: result}, nil
}
