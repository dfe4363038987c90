// Package simulation contains what-if simulation use cases. Simulations
// run the allocation pipeline against cloned goals and hypothetical
// finances; the real goal store is never mutated.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/application/usecase/allocation"
	"github.com/goal-planner/backend/internal/domain/entity"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// SimulateInput represents the input for a simulation run. Goals may be
// supplied directly; when nil they are fetched (read-only) from the goal
// store.
type SimulateInput struct {
	UserID   uuid.UUID
	Scenario entity.SimulationScenario
	Goals    []*entity.Goal
}

// SimulateOutput represents the output of a simulation run.
type SimulateOutput struct {
	Result *entity.SimulationResult
}

// SimulateUseCase re-runs the allocation pipeline against a hypothetical
// scenario and diffs the outcome against the baseline. Both runs share one
// configuration and one clock instant, so repeated calls with identical
// input are bit-identical.
type SimulateUseCase struct {
	goalRepo      adapter.GoalRepository
	profileSource adapter.FinancialProfileSource
	config        valueobject.EngineConfig
	now           func() time.Time
}

// NewSimulateUseCase creates a new SimulateUseCase instance.
func NewSimulateUseCase(
	goalRepo adapter.GoalRepository,
	profileSource adapter.FinancialProfileSource,
	config valueobject.EngineConfig,
) *SimulateUseCase {
	return &SimulateUseCase{
		goalRepo:      goalRepo,
		profileSource: profileSource,
		config:        config,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the use case clock for deterministic tests.
func (uc *SimulateUseCase) WithClock(now func() time.Time) *SimulateUseCase {
	uc.now = now
	return uc
}

// Execute runs the simulation.
func (uc *SimulateUseCase) Execute(ctx context.Context, input SimulateInput) (*SimulateOutput, error) {
	goals := input.Goals
	if goals == nil {
		fetched, err := uc.goalRepo.ListActiveGoals(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active goals: %w", err)
		}
		goals = fetched
	}

	profile := entity.FinancialProfile{UserID: input.UserID}
	if uc.profileSource != nil {
		if stored, err := uc.profileSource.GetProfile(ctx, input.UserID); err == nil && stored != nil {
			profile = *stored
		}
	}

	now := uc.now()
	baseline := cloneGoals(goals)
	before := allocation.Compute(input.UserID, baseline, profile, now, uc.config)

	modifiedGoals, modifiedProfile := ApplyScenario(cloneGoals(goals), profile, input.Scenario)
	after := allocation.Compute(input.UserID, modifiedGoals, modifiedProfile, now, uc.config)

	result := &entity.SimulationResult{
		Scenario: input.Scenario,
		Before:   before,
		After:    after,
		Impact:   SummarizeImpact(before, after),
	}
	return &SimulateOutput{Result: result}, nil
}

// ApplyScenario applies the scenario's delta to an already-cloned goal set
// and profile copy.
func ApplyScenario(
	goals []*entity.Goal,
	profile entity.FinancialProfile,
	scenario entity.SimulationScenario,
) ([]*entity.Goal, entity.FinancialProfile) {
	profile.MonthlyIncome += scenario.IncomeChange
	profile.FixedExpenses += scenario.ExpenseChange

	if scenario.RemoveGoalID != nil {
		filtered := goals[:0]
		for _, g := range goals {
			if g.ID != *scenario.RemoveGoalID {
				filtered = append(filtered, g)
			}
		}
		goals = filtered
	}

	if scenario.NewGoal != nil {
		goals = append(goals, scenario.NewGoal.Clone())
	}

	for _, change := range scenario.Priorities {
		for _, g := range goals {
			if g.ID == change.GoalID {
				g.Priority = clampPriority(change.NewPriority)
			}
		}
	}

	return goals, profile
}

// SummarizeImpact diffs months-to-complete per goal between the two runs.
func SummarizeImpact(before, after *entity.GoalAllocationResult) entity.ImpactSummary {
	beforeMonths := make(map[uuid.UUID]int, len(before.Allocations))
	beforeFunded := make(map[uuid.UUID]bool, len(before.Allocations))
	for i := range before.Allocations {
		a := &before.Allocations[i]
		beforeMonths[a.GoalID] = a.MonthsToComplete
		beforeFunded[a.GoalID] = a.MonthlyAllocation > 0
	}

	summary := entity.ImpactSummary{}
	for i := range after.Allocations {
		a := &after.Allocations[i]
		prevMonths, known := beforeMonths[a.GoalID]
		if !known {
			continue
		}
		prevFunded := beforeFunded[a.GoalID]
		nowFunded := a.MonthlyAllocation > 0

		switch {
		case !prevFunded && nowFunded:
			summary.GoalsImproved++
		case prevFunded && !nowFunded:
			summary.GoalsWorsened++
		case prevFunded && nowFunded && a.MonthsToComplete < prevMonths:
			summary.GoalsImproved++
			summary.NetMonthsSaved += prevMonths - a.MonthsToComplete
		case prevFunded && nowFunded && a.MonthsToComplete > prevMonths:
			summary.GoalsWorsened++
			summary.NetMonthsSaved -= a.MonthsToComplete - prevMonths
		}
	}

	switch {
	case summary.NetMonthsSaved > 0 || (summary.GoalsImproved > summary.GoalsWorsened):
		summary.Recommendation = "the scenario speeds up your plan; applying it is worthwhile"
	case summary.NetMonthsSaved < 0 || (summary.GoalsWorsened > summary.GoalsImproved):
		summary.Recommendation = "the scenario slows down your plan; keep the current setup"
	default:
		summary.Recommendation = "the scenario has no material effect on your plan"
	}
	return summary
}

func cloneGoals(goals []*entity.Goal) []*entity.Goal {
	clones := make([]*entity.Goal, len(goals))
	for i, g := range goals {
		clones[i] = g.Clone()
	}
	return clones
}

func clampPriority(p int) int {
	if p < entity.PriorityHighest {
		return entity.PriorityHighest
	}
	if p > entity.PriorityLowest {
		return entity.PriorityLowest
	}
	return p
}
