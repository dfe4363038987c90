// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
// Goals are never physically deleted, only status-transitioned.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user, any status.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// ListActiveGoals retrieves the user's active goals, the input set of an
	// allocation run.
	ListActiveGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// UpdateGoalAllocation writes a computed monthly allocation to a goal
	// owned by userID. snapshotUpdatedAt is the UpdatedAt value of the goal
	// snapshot the allocation was computed from; if the stored row has moved
	// past it the write is rejected with domainerror.ErrStaleGoalSnapshot
	// (last-writer-wins with an updated_at guard). A goal that does not
	// exist under userID is rejected with domainerror.ErrGoalNotFound.
	UpdateGoalAllocation(ctx context.Context, userID, goalID uuid.UUID, amount float64, snapshotUpdatedAt time.Time) error

	// UpdateProgress sets the goal's current amount (reconciliation path) and
	// transitions the goal to completed when the target is reached.
	UpdateProgress(ctx context.Context, goalID uuid.UUID, currentAmount float64) error

	// ListUsersWithLinkedGoals returns the IDs of users owning at least one
	// active goal with a linked savings account. Drives the scheduled
	// reconciliation run.
	ListUsersWithLinkedGoals(ctx context.Context) ([]uuid.UUID, error)
}
