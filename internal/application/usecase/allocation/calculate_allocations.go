package allocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// CalculateAllocationsInput represents the input for an allocation run.
// Goals may be supplied directly (simulation, tests); when nil they are
// fetched from the goal store. The financial figures override the stored
// profile when set.
type CalculateAllocationsInput struct {
	UserID uuid.UUID
	Goals  []*entity.Goal

	MonthlyIncome       *float64
	FixedExpenses       *float64
	MinimumLivingBudget *float64
	SafetyMarginPercent *float64

	// PersistHistory appends audit records for the run under Reason.
	PersistHistory bool
	Reason         entity.AllocationReason
}

// CalculateAllocationsOutput represents the output of an allocation run.
type CalculateAllocationsOutput struct {
	Result *entity.GoalAllocationResult
}

// CalculateAllocationsUseCase computes the optimal monthly allocation
// across a user's active goals.
type CalculateAllocationsUseCase struct {
	goalRepo      adapter.GoalRepository
	profileSource adapter.FinancialProfileSource
	historyRepo   adapter.AllocationHistoryRepository
	cache         adapter.AllocationCache
	config        valueobject.EngineConfig
	now           func() time.Time
}

// NewCalculateAllocationsUseCase creates a new CalculateAllocationsUseCase instance.
func NewCalculateAllocationsUseCase(
	goalRepo adapter.GoalRepository,
	profileSource adapter.FinancialProfileSource,
	historyRepo adapter.AllocationHistoryRepository,
	cache adapter.AllocationCache,
	config valueobject.EngineConfig,
) *CalculateAllocationsUseCase {
	return &CalculateAllocationsUseCase{
		goalRepo:      goalRepo,
		profileSource: profileSource,
		historyRepo:   historyRepo,
		cache:         cache,
		config:        config,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the use case clock. Tests use it for deterministic
// deadlines.
func (uc *CalculateAllocationsUseCase) WithClock(now func() time.Time) *CalculateAllocationsUseCase {
	uc.now = now
	return uc
}

// Execute performs the allocation run. External reads happen strictly
// before the computation and writes strictly after; the computation itself
// is pure.
func (uc *CalculateAllocationsUseCase) Execute(ctx context.Context, input CalculateAllocationsInput) (*CalculateAllocationsOutput, error) {
	goals := input.Goals
	if goals == nil {
		fetched, err := uc.goalRepo.ListActiveGoals(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active goals: %w", err)
		}
		goals = fetched
	}

	profile, err := uc.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	cfg := uc.config
	if input.SafetyMarginPercent != nil {
		cfg.SafetyMarginPercent = *input.SafetyMarginPercent
	}

	result := Compute(input.UserID, goals, profile, uc.now(), cfg)

	if input.PersistHistory {
		if err := uc.persistHistory(ctx, input, result, goals); err != nil {
			// The computed result is still valid; the caller may retry the
			// write without recomputing.
			return &CalculateAllocationsOutput{Result: result}, err
		}
	}

	if uc.cache != nil {
		if err := uc.cache.SetLatest(ctx, result); err != nil {
			slog.Warn("failed to cache allocation result", "user_id", input.UserID, "error", err)
		}
	}

	return &CalculateAllocationsOutput{Result: result}, nil
}

// resolveProfile merges the stored profile with the input overrides.
func (uc *CalculateAllocationsUseCase) resolveProfile(ctx context.Context, input CalculateAllocationsInput) (entity.FinancialProfile, error) {
	profile := entity.FinancialProfile{UserID: input.UserID}

	needsStored := input.MonthlyIncome == nil || input.FixedExpenses == nil || input.MinimumLivingBudget == nil
	if needsStored && uc.profileSource != nil {
		stored, err := uc.profileSource.GetProfile(ctx, input.UserID)
		if err == nil && stored != nil {
			profile = *stored
		}
		// A missing profile is not fatal: the engine answers "nothing to
		// allocate yet" for a zero income.
	}

	if input.MonthlyIncome != nil {
		profile.MonthlyIncome = *input.MonthlyIncome
	}
	if input.FixedExpenses != nil {
		profile.FixedExpenses = *input.FixedExpenses
	}
	if input.MinimumLivingBudget != nil {
		profile.MinimumLivingBudget = *input.MinimumLivingBudget
	}
	return profile, nil
}

// persistHistory appends one audit record per allocation.
func (uc *CalculateAllocationsUseCase) persistHistory(ctx context.Context, input CalculateAllocationsInput, result *entity.GoalAllocationResult, goals []*entity.Goal) error {
	if uc.historyRepo == nil {
		return nil
	}

	reason := input.Reason
	if !entity.IsValidAllocationReason(reason) {
		reason = entity.ReasonRebalance
	}

	index := BuildGoalIndex(goals)
	records := BuildHistoryRecords(input.UserID, result, index, reason)
	if err := uc.historyRepo.Append(ctx, records); err != nil {
		return domainerror.NewPersistenceError(
			domainerror.ErrCodeHistoryWriteFailed,
			"append allocation history",
			err,
		)
	}
	return nil
}
