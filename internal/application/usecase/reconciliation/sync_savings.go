// Package reconciliation contains savings reconciliation use cases: a
// scheduled process that pulls real account balances and updates goal
// progress, independent of allocation computation.
package reconciliation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// progressMilestones are the percentages whose crossing triggers a
// notification.
var progressMilestones = []int{25, 50, 75, 100}

// balanceThreshold is the divergence below which a balance difference is
// treated as rounding noise and ignored.
var balanceThreshold = decimal.NewFromFloat(0.01)

// LinkedUserSource enumerates users whose goals need reconciliation. The
// goal repository satisfies it.
type LinkedUserSource interface {
	ListUsersWithLinkedGoals(ctx context.Context) ([]uuid.UUID, error)
}

// SyncSavingsInput represents the input for a reconciliation run.
type SyncSavingsInput struct {
	UserID uuid.UUID
}

// GoalSyncResult describes what happened to one goal during the run.
type GoalSyncResult struct {
	GoalID            uuid.UUID
	GoalName          string
	PreviousAmount    float64
	NewAmount         float64
	MilestonesCrossed []int
	Completed         bool
}

// SyncSavingsOutput represents the output of a reconciliation run.
type SyncSavingsOutput struct {
	GoalsChecked int
	GoalsUpdated int
	Results      []GoalSyncResult
}

// SyncSavingsUseCase reconciles linked savings-account balances into goal
// progress and reports crossed milestones for downstream notification.
type SyncSavingsUseCase struct {
	goalRepo      adapter.GoalRepository
	balanceSource adapter.SavingsAccountSource
	notifier      adapter.NotificationSender
}

// NewSyncSavingsUseCase creates a new SyncSavingsUseCase instance.
func NewSyncSavingsUseCase(
	goalRepo adapter.GoalRepository,
	balanceSource adapter.SavingsAccountSource,
	notifier adapter.NotificationSender,
) *SyncSavingsUseCase {
	return &SyncSavingsUseCase{
		goalRepo:      goalRepo,
		balanceSource: balanceSource,
		notifier:      notifier,
	}
}

// Execute runs the reconciliation. A failure on one goal is logged and
// skipped; the run continues with the remaining goals.
func (uc *SyncSavingsUseCase) Execute(ctx context.Context, input SyncSavingsInput) (*SyncSavingsOutput, error) {
	goals, err := uc.goalRepo.ListActiveGoals(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	output := &SyncSavingsOutput{}
	for _, goal := range goals {
		if goal.LinkedAccountID == nil {
			continue
		}
		output.GoalsChecked++

		balance, err := uc.balanceSource.GetBalance(ctx, *goal.LinkedAccountID)
		if err != nil {
			slog.Warn("failed to fetch linked account balance",
				"goal_id", goal.ID,
				"account_id", *goal.LinkedAccountID,
				"error", err,
			)
			continue
		}

		current := decimal.NewFromFloat(goal.CurrentAmount)
		if balance.Sub(current).Abs().LessThanOrEqual(balanceThreshold) {
			continue
		}

		newAmount, _ := balance.Float64()
		result := GoalSyncResult{
			GoalID:            goal.ID,
			GoalName:          goal.Name,
			PreviousAmount:    goal.CurrentAmount,
			NewAmount:         newAmount,
			MilestonesCrossed: crossedMilestones(goal, newAmount),
			Completed:         newAmount >= goal.TargetAmount,
		}

		if err := uc.goalRepo.UpdateProgress(ctx, goal.ID, newAmount); err != nil {
			slog.Error("failed to update goal progress",
				"goal_id", goal.ID,
				"error", err,
			)
			continue
		}
		output.GoalsUpdated++

		uc.notifyMilestones(ctx, goal, &result)
		output.Results = append(output.Results, result)
	}

	return output, nil
}

// crossedMilestones returns the milestones passed between the goal's old
// progress and the new amount.
func crossedMilestones(goal *entity.Goal, newAmount float64) []int {
	if goal.TargetAmount <= 0 {
		return nil
	}

	oldPercent := goal.CurrentAmount / goal.TargetAmount * 100
	newPercent := newAmount / goal.TargetAmount * 100

	var crossed []int
	for _, m := range progressMilestones {
		if oldPercent < float64(m) && newPercent >= float64(m) {
			crossed = append(crossed, m)
		}
	}
	return crossed
}

func (uc *SyncSavingsUseCase) notifyMilestones(ctx context.Context, goal *entity.Goal, result *GoalSyncResult) {
	if uc.notifier == nil {
		return
	}
	for _, m := range result.MilestonesCrossed {
		notification := adapter.MilestoneNotification{
			UserID:          goal.UserID,
			GoalID:          goal.ID,
			GoalName:        goal.Name,
			Milestone:       m,
			ProgressPercent: result.NewAmount / goal.TargetAmount * 100,
		}
		if err := uc.notifier.SendMilestone(ctx, notification); err != nil {
			slog.Warn("failed to send milestone notification",
				"goal_id", goal.ID,
				"milestone", m,
				"error", err,
			)
		}
	}
}
