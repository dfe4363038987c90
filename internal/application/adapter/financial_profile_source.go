package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
)

// FinancialProfileSource supplies the monthly income, fixed expenses and
// minimum living budget the engine computes against. The numbers are
// user-declared or derived from transaction history by another subsystem.
type FinancialProfileSource interface {
	// GetProfile returns the user's current financial profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.FinancialProfile, error)

	// UpsertProfile stores a user-declared profile.
	UpsertProfile(ctx context.Context, profile *entity.FinancialProfile) error
}
