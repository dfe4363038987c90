package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goal-planner/backend/internal/domain/entity"
	domainerror "github.com/goal-planner/backend/internal/domain/error"
	"github.com/goal-planner/backend/internal/domain/valueobject"
)

// testNow is the fixed clock instant every engine test computes against.
var testNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func testConfig() valueobject.EngineConfig {
	return valueobject.DefaultEngineConfig()
}

func makeGoal(name string, target, current float64, priority int) *entity.Goal {
	g := entity.NewGoal(uuid.New(), name, entity.GoalTypeSavings, target, priority)
	g.CurrentAmount = current
	g.StartDate = testNow.AddDate(0, -6, 0)
	g.CreatedAt = g.StartDate
	g.UpdatedAt = g.StartDate
	return g
}

func withDeadline(g *entity.Goal, monthsFromNow int) *entity.Goal {
	deadline := testNow.AddDate(0, monthsFromNow, 0)
	g.Deadline = &deadline
	return g
}

func withDependency(g, dep *entity.Goal) *entity.Goal {
	id := dep.ID
	g.DependsOnGoalID = &id
	return g
}

func testProfile(income, fixed, minLiving float64) entity.FinancialProfile {
	return entity.FinancialProfile{
		UserID:              uuid.New(),
		MonthlyIncome:       income,
		FixedExpenses:       fixed,
		MinimumLivingBudget: minLiving,
	}
}

func allocationFor(allocations []entity.GoalAllocation, goalID uuid.UUID) *entity.GoalAllocation {
	for i := range allocations {
		if allocations[i].GoalID == goalID {
			return &allocations[i]
		}
	}
	return nil
}

// fakeGoalRepo implements adapter.GoalRepository with overridable behavior.
type fakeGoalRepo struct {
	goals            []*entity.Goal
	updateAllocation func(goalID uuid.UUID, amount float64, snapshotUpdatedAt time.Time) error
	appliedAmounts   map[uuid.UUID]float64
}

func newFakeGoalRepo(goals ...*entity.Goal) *fakeGoalRepo {
	return &fakeGoalRepo{
		goals:          goals,
		appliedAmounts: make(map[uuid.UUID]float64),
	}
}

func (r *fakeGoalRepo) Create(_ context.Context, goal *entity.Goal) error {
	r.goals = append(r.goals, goal)
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	for _, g := range r.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (r *fakeGoalRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*entity.Goal, error) {
	return r.goals, nil
}

func (r *fakeGoalRepo) ListActiveGoals(_ context.Context, _ uuid.UUID) ([]*entity.Goal, error) {
	var active []*entity.Goal
	for _, g := range r.goals {
		if g.Status == entity.GoalStatusActive {
			active = append(active, g)
		}
	}
	return active, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, _ *entity.Goal) error {
	return nil
}

func (r *fakeGoalRepo) UpdateGoalAllocation(_ context.Context, userID, goalID uuid.UUID, amount float64, snapshotUpdatedAt time.Time) error {
	var goal *entity.Goal
	for _, g := range r.goals {
		if g.ID == goalID {
			goal = g
			break
		}
	}
	if goal == nil || goal.UserID != userID {
		return domainerror.ErrGoalNotFound
	}
	if r.updateAllocation != nil {
		if err := r.updateAllocation(goalID, amount, snapshotUpdatedAt); err != nil {
			return err
		}
	}
	r.appliedAmounts[goalID] = amount
	return nil
}

func (r *fakeGoalRepo) UpdateProgress(_ context.Context, goalID uuid.UUID, currentAmount float64) error {
	for _, g := range r.goals {
		if g.ID == goalID {
			g.CurrentAmount = currentAmount
		}
	}
	return nil
}

func (r *fakeGoalRepo) ListUsersWithLinkedGoals(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

// fakeHistoryRepo records appended audit batches.
type fakeHistoryRepo struct {
	appended  [][]*entity.AllocationHistory
	appendErr error
}

func (r *fakeHistoryRepo) Append(_ context.Context, records []*entity.AllocationHistory) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, records)
	return nil
}

func (r *fakeHistoryRepo) FindByUserID(_ context.Context, _ uuid.UUID, _, _ int) ([]*entity.AllocationHistory, error) {
	var all []*entity.AllocationHistory
	for _, batch := range r.appended {
		all = append(all, batch...)
	}
	return all, nil
}

func (r *fakeHistoryRepo) FindByGoalID(_ context.Context, goalID uuid.UUID, _, _ int) ([]*entity.AllocationHistory, error) {
	var matched []*entity.AllocationHistory
	for _, batch := range r.appended {
		for _, record := range batch {
			if record.GoalID == goalID {
				matched = append(matched, record)
			}
		}
	}
	return matched, nil
}

// fakeCache records cache traffic.
type fakeCache struct {
	stored      []*entity.GoalAllocationResult
	invalidated []uuid.UUID
	setErr      error
	getErr      error
}

func (c *fakeCache) SetLatest(_ context.Context, result *entity.GoalAllocationResult) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.stored = append(c.stored, result)
	return nil
}

func (c *fakeCache) GetLatest(_ context.Context, _ uuid.UUID) (*entity.GoalAllocationResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if len(c.stored) == 0 {
		return nil, nil
	}
	return c.stored[len(c.stored)-1], nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}
