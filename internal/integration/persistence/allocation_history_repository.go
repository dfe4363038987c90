// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/integration/persistence/model"
)

// allocationHistoryRepository implements adapter.AllocationHistoryRepository.
type allocationHistoryRepository struct {
	db *gorm.DB
}

// NewAllocationHistoryRepository creates a new allocation history repository instance.
func NewAllocationHistoryRepository(db *gorm.DB) adapter.AllocationHistoryRepository {
	return &allocationHistoryRepository{
		db: db,
	}
}

// Append inserts the audit records in one batch. Records are never updated.
func (r *allocationHistoryRepository) Append(ctx context.Context, records []*entity.AllocationHistory) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]*model.AllocationHistoryModel, len(records))
	for i, record := range records {
		models[i] = model.AllocationHistoryFromEntity(record)
	}

	return r.db.WithContext(ctx).Create(&models).Error
}

// FindByUserID returns the user's audit trail, newest first.
func (r *allocationHistoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.AllocationHistory, error) {
	return r.find(ctx, "user_id = ?", userID, limit, offset)
}

// FindByGoalID returns a goal's audit trail, newest first.
func (r *allocationHistoryRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID, limit, offset int) ([]*entity.AllocationHistory, error) {
	return r.find(ctx, "goal_id = ?", goalID, limit, offset)
}

func (r *allocationHistoryRepository) find(ctx context.Context, query string, id uuid.UUID, limit, offset int) ([]*entity.AllocationHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []model.AllocationHistoryModel
	result := r.db.WithContext(ctx).
		Where(query, id).
		Order("calculation_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.AllocationHistory, len(models))
	for i, m := range models {
		records[i] = m.ToEntity()
	}
	return records, nil
}
