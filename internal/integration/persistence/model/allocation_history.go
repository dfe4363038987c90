// Package model defines database models for persistence layer.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// MetadataJSON represents the JSONB metadata column of an audit record.
type MetadataJSON map[string]any

// Value implements the driver.Valuer interface.
func (m MetadataJSON) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface.
func (m *MetadataJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, m)
}

// AllocationHistoryModel represents the allocation_history table in the
// database. Rows are append-only.
type AllocationHistoryModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	GoalID uuid.UUID `gorm:"type:uuid;not null;index"`

	CalculationDate    time.Time `gorm:"not null;index"`
	MonthlyAllocation  float64   `gorm:"type:decimal(15,2);not null"`
	PreviousAllocation float64   `gorm:"type:decimal(15,2);not null;default:0"`
	Reason             string    `gorm:"type:varchar(30);not null"`
	ConfidenceScore    float64   `gorm:"type:decimal(5,4);not null;default:0"`

	Warnings pq.StringArray `gorm:"type:text[]"`
	Metadata MetadataJSON   `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AllocationHistoryModel.
func (AllocationHistoryModel) TableName() string {
	return "allocation_history"
}

// ToEntity converts an AllocationHistoryModel to a domain entity.
func (m *AllocationHistoryModel) ToEntity() *entity.AllocationHistory {
	return &entity.AllocationHistory{
		ID:                 m.ID,
		UserID:             m.UserID,
		GoalID:             m.GoalID,
		CalculationDate:    m.CalculationDate,
		MonthlyAllocation:  m.MonthlyAllocation,
		PreviousAllocation: m.PreviousAllocation,
		Reason:             entity.AllocationReason(m.Reason),
		ConfidenceScore:    m.ConfidenceScore,
		Warnings:           []string(m.Warnings),
		Metadata:           map[string]any(m.Metadata),
		CreatedAt:          m.CreatedAt,
	}
}

// AllocationHistoryFromEntity creates a model from a domain entity.
func AllocationHistoryFromEntity(h *entity.AllocationHistory) *AllocationHistoryModel {
	return &AllocationHistoryModel{
		ID:                 h.ID,
		UserID:             h.UserID,
		GoalID:             h.GoalID,
		CalculationDate:    h.CalculationDate,
		MonthlyAllocation:  h.MonthlyAllocation,
		PreviousAllocation: h.PreviousAllocation,
		Reason:             string(h.Reason),
		ConfidenceScore:    h.ConfidenceScore,
		Warnings:           pq.StringArray(h.Warnings),
		Metadata:           MetadataJSON(h.Metadata),
		CreatedAt:          h.CreatedAt,
	}
}
