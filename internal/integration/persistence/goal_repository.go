// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves all goals for a given user, any status.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("priority ASC, created_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(goalModels), nil
}

// ListActiveGoals retrieves the user's active goals ordered by priority.
func (r *goalRepository) ListActiveGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.GoalStatusActive)).
		Order("priority ASC, created_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(goalModels), nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateGoalAllocation writes a computed monthly allocation, guarded by the
// snapshot's updated_at (last-writer-wins) and scoped to the owning user.
// A row that moved past the snapshot rejects the write with
// ErrStaleGoalSnapshot; a goal the user does not own is indistinguishable
// from a missing one.
func (r *goalRepository) UpdateGoalAllocation(ctx context.Context, userID, goalID uuid.UUID, amount float64, snapshotUpdatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ? AND user_id = ? AND updated_at = ?", goalID, userID, snapshotUpdatedAt).
		Updates(map[string]any{
			"monthly_allocation": amount,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the user has no such goal or its updated_at moved past the
		// snapshot.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.GoalModel{}).Where("id = ? AND user_id = ?", goalID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrGoalNotFound
		}
		return domainerror.ErrStaleGoalSnapshot
	}
	return nil
}

// UpdateProgress sets the goal's current amount and completes the goal when
// the target is reached.
func (r *goalRepository) UpdateProgress(ctx context.Context, goalID uuid.UUID, currentAmount float64) error {
	var goalModel model.GoalModel
	if err := r.db.WithContext(ctx).Where("id = ?", goalID).First(&goalModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrGoalNotFound
		}
		return err
	}

	updates := map[string]any{
		"current_amount": currentAmount,
		"updated_at":     time.Now().UTC(),
	}
	if currentAmount >= goalModel.TargetAmount && goalModel.Status == string(entity.GoalStatusActive) {
		updates["status"] = string(entity.GoalStatusCompleted)
	}

	return r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goalID).
		Updates(updates).Error
}

// ListUsersWithLinkedGoals returns the distinct owners of active goals
// with a linked savings account.
func (r *goalRepository) ListUsersWithLinkedGoals(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Distinct("user_id").
		Where("status = ? AND linked_account_id IS NOT NULL", string(entity.GoalStatusActive)).
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}

func toEntities(goalModels []model.GoalModel) []*entity.Goal {
	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals
}
