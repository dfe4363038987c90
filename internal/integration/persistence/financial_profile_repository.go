// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/integration/persistence/model"
)

// financialProfileRepository implements adapter.FinancialProfileSource
// against the local financial_profiles table.
type financialProfileRepository struct {
	db *gorm.DB
}

// NewFinancialProfileRepository creates a new financial profile repository instance.
func NewFinancialProfileRepository(db *gorm.DB) adapter.FinancialProfileSource {
	return &financialProfileRepository{
		db: db,
	}
}

// GetProfile returns the user's financial profile.
func (r *financialProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.FinancialProfile, error) {
	var profileModel model.FinancialProfileModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// UpsertProfile stores a user-declared profile, replacing any previous one.
func (r *financialProfileRepository) UpsertProfile(ctx context.Context, profile *entity.FinancialProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	profileModel := model.FinancialProfileFromEntity(profile)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profileModel).Error
}
