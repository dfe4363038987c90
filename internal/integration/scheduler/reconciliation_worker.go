// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/goal-planner/backend/internal/application/usecase/reconciliation"
)

// ReconciliationWorker periodically reconciles linked savings-account
// balances into goal progress.
type ReconciliationWorker struct {
	syncUseCase  *reconciliation.SyncSavingsUseCase
	userSource   reconciliation.LinkedUserSource
	pollInterval time.Duration
}

// WorkerConfig holds configuration for the reconciliation worker.
type WorkerConfig struct {
	PollInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 1 * time.Hour,
	}
}

// NewReconciliationWorker creates a new reconciliation worker.
func NewReconciliationWorker(
	syncUseCase *reconciliation.SyncSavingsUseCase,
	userSource reconciliation.LinkedUserSource,
	config WorkerConfig,
) *ReconciliationWorker {
	return &ReconciliationWorker{
		syncUseCase:  syncUseCase,
		userSource:   userSource,
		pollInterval: config.PollInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *ReconciliationWorker) Start(ctx context.Context) {
	slog.Info("Reconciliation worker started", "poll_interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Run immediately on start, then on ticker
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reconciliation worker shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce reconciles every user with at least one linked goal. A failure
// for one user is logged and the run continues.
func (w *ReconciliationWorker) runOnce(ctx context.Context) {
	userIDs, err := w.userSource.ListUsersWithLinkedGoals(ctx)
	if err != nil {
		slog.Error("Failed to list users with linked goals", "error", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	slog.Debug("Reconciling linked goals", "users", len(userIDs))

	for _, userID := range userIDs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		output, err := w.syncUseCase.Execute(ctx, reconciliation.SyncSavingsInput{UserID: userID})
		if err != nil {
			slog.Error("Reconciliation run failed", "user_id", userID, "error", err)
			continue
		}
		if output.GoalsUpdated > 0 {
			slog.Info("Reconciliation run completed",
				"user_id", userID,
				"goals_checked", output.GoalsChecked,
				"goals_updated", output.GoalsUpdated,
			)
		}
	}
}

// RunNow runs a single reconciliation pass immediately (useful for testing).
func (w *ReconciliationWorker) RunNow(ctx context.Context) {
	w.runOnce(ctx)
}
