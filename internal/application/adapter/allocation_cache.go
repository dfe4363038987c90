package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// AllocationCache stores the latest allocation result per user so dashboard
// reads do not trigger a recomputation. Cache misses and cache failures are
// both non-fatal; callers fall through to the engine.
type AllocationCache interface {
	// SetLatest stores the result as the user's latest.
	SetLatest(ctx context.Context, result *entity.GoalAllocationResult) error

	// GetLatest returns the cached result, or nil on a miss.
	GetLatest(ctx context.Context, userID uuid.UUID) (*entity.GoalAllocationResult, error)

	// Invalidate drops the cached result after goals or allocations change.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
