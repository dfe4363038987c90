// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name string `gorm:"type:varchar(255);not null"`
	Type string `gorm:"type:varchar(30);not null;default:'other'"`

	TargetAmount  float64    `gorm:"type:decimal(15,2);not null"`
	CurrentAmount float64    `gorm:"type:decimal(15,2);not null;default:0"`
	StartDate     time.Time  `gorm:"type:date;not null"`
	Deadline      *time.Time `gorm:"type:date"`

	Priority int `gorm:"not null;default:5"`

	IsFlexible        bool    `gorm:"not null;default:true"`
	AutoAdjust        bool    `gorm:"not null;default:true"`
	MinAllocation     float64 `gorm:"type:decimal(15,2);not null;default:0"`
	MonthlyAllocation float64 `gorm:"type:decimal(15,2);not null;default:0"`

	DependsOnGoalID *uuid.UUID `gorm:"type:uuid;index"`
	LinkedAccountID *string    `gorm:"type:varchar(64)"`

	// Goals are never physically deleted; status carries the lifecycle.
	Status string `gorm:"type:varchar(20);not null;default:'active';index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Type:              entity.GoalType(m.Type),
		TargetAmount:      m.TargetAmount,
		CurrentAmount:     m.CurrentAmount,
		StartDate:         m.StartDate,
		Deadline:          m.Deadline,
		Priority:          m.Priority,
		IsFlexible:        m.IsFlexible,
		AutoAdjust:        m.AutoAdjust,
		MinAllocation:     m.MinAllocation,
		MonthlyAllocation: m.MonthlyAllocation,
		DependsOnGoalID:   m.DependsOnGoalID,
		LinkedAccountID:   m.LinkedAccountID,
		Status:            entity.GoalStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:                goal.ID,
		UserID:            goal.UserID,
		Name:              goal.Name,
		Type:              string(goal.Type),
		TargetAmount:      goal.TargetAmount,
		CurrentAmount:     goal.CurrentAmount,
		StartDate:         goal.StartDate,
		Deadline:          goal.Deadline,
		Priority:          goal.Priority,
		IsFlexible:        goal.IsFlexible,
		AutoAdjust:        goal.AutoAdjust,
		MinAllocation:     goal.MinAllocation,
		MonthlyAllocation: goal.MonthlyAllocation,
		DependsOnGoalID:   goal.DependsOnGoalID,
		LinkedAccountID:   goal.LinkedAccountID,
		Status:            string(goal.Status),
		CreatedAt:         goal.CreatedAt,
		UpdatedAt:         goal.UpdatedAt,
	}
}
