// Package email implements outbound email delivery via Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/goal-planner/backend/internal/application/adapter"
)

// UserEmailLookup resolves a user ID to a deliverable address. Provided by
// the account subsystem.
type UserEmailLookup func(ctx context.Context, userID string) (string, error)

// milestoneNotifier implements adapter.NotificationSender over Resend.
type milestoneNotifier struct {
	client      *resend.Client
	fromName    string
	fromEmail   string
	lookupEmail UserEmailLookup
}

// NewMilestoneNotifier creates a new milestone notifier instance.
func NewMilestoneNotifier(apiKey, fromName, fromEmail string, lookup UserEmailLookup) adapter.NotificationSender {
	return &milestoneNotifier{
		client:      resend.NewClient(apiKey),
		fromName:    fromName,
		fromEmail:   fromEmail,
		lookupEmail: lookup,
	}
}

// SendMilestone notifies the user that a goal crossed a progress milestone.
func (n *milestoneNotifier) SendMilestone(ctx context.Context, notification adapter.MilestoneNotification) error {
	to, err := n.lookupEmail(ctx, notification.UserID.String())
	if err != nil {
		return fmt.Errorf("failed to resolve user email: %w", err)
	}

	subject := fmt.Sprintf("%s reached %d%%", notification.GoalName, notification.Milestone)
	if notification.Milestone == 100 {
		subject = fmt.Sprintf("%s is fully funded!", notification.GoalName)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    renderMilestoneBody(notification),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send milestone email: %w", err)
	}

	slog.Info("milestone notification sent",
		"goal_id", notification.GoalID,
		"milestone", notification.Milestone,
		"email_id", sent.Id,
	)
	return nil
}

func renderMilestoneBody(n adapter.MilestoneNotification) string {
	if n.Milestone == 100 {
		return fmt.Sprintf(
			"<p>Congratulations! Your goal <strong>%s</strong> is fully funded.</p>",
			n.GoalName,
		)
	}
	return fmt.Sprintf(
		"<p>Your goal <strong>%s</strong> just crossed %d%% (now at %.1f%%). Keep going!</p>",
		n.GoalName, n.Milestone, n.ProgressPercent,
	)
}
