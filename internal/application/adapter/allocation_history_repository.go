package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// AllocationHistoryRepository persists the append-only allocation audit
// trail. Records are only ever inserted.
type AllocationHistoryRepository interface {
	// Append inserts one audit record per allocated goal.
	Append(ctx context.Context, records []*entity.AllocationHistory) error

	// FindByUserID returns the user's audit trail, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AllocationHistory, error)

	// FindByGoalID returns the audit trail of a single goal, newest first.
	FindByGoalID(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*entity.AllocationHistory, error)
}
