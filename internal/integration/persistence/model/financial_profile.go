// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// FinancialProfileModel represents the financial_profiles table in the
// database, one row per user.
type FinancialProfileModel struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`

	MonthlyIncome       float64 `gorm:"type:decimal(15,2);not null;default:0"`
	FixedExpenses       float64 `gorm:"type:decimal(15,2);not null;default:0"`
	MinimumLivingBudget float64 `gorm:"type:decimal(15,2);not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the FinancialProfileModel.
func (FinancialProfileModel) TableName() string {
	return "financial_profiles"
}

// ToEntity converts a FinancialProfileModel to a domain entity.
func (m *FinancialProfileModel) ToEntity() *entity.FinancialProfile {
	return &entity.FinancialProfile{
		UserID:              m.UserID,
		MonthlyIncome:       m.MonthlyIncome,
		FixedExpenses:       m.FixedExpenses,
		MinimumLivingBudget: m.MinimumLivingBudget,
		UpdatedAt:           m.UpdatedAt,
	}
}

// FinancialProfileFromEntity creates a model from a domain entity.
func FinancialProfileFromEntity(p *entity.FinancialProfile) *FinancialProfileModel {
	return &FinancialProfileModel{
		UserID:              p.UserID,
		MonthlyIncome:       p.MonthlyIncome,
		FixedExpenses:       p.FixedExpenses,
		MinimumLivingBudget: p.MinimumLivingBudget,
		UpdatedAt:           p.UpdatedAt,
	}
}
