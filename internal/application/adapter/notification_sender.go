package adapter

import (
	"context"

	"github.com/google/uuid"
)

// MilestoneNotification describes a progress milestone a goal just crossed.
type MilestoneNotification struct {
	UserID          uuid.UUID
	GoalID          uuid.UUID
	GoalName        string
	Milestone       int // 25, 50, 75 or 100
	ProgressPercent float64
}

// NotificationSender delivers milestone notifications to the user.
type NotificationSender interface {
	// SendMilestone notifies the user that a goal crossed a milestone.
	SendMilestone(ctx context.Context, notification MilestoneNotification) error
}
