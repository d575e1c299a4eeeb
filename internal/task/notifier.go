package task

import (
	"context"
	"log/slog"

	"github.com/regsvc/user-api/internal/email"
	"github.com/regsvc/user-api/internal/service"
)

// Notifier implements service.Notifier by enqueueing welcome email tasks on
// the runner. Submission failures are logged and dropped so the caller's
// registration flow is never affected.
type Notifier struct {
	runner *Runner
	sender email.WelcomeSender
	logger *slog.Logger
}

// NewNotifier creates a Notifier dispatching onto the given runner.
func NewNotifier(runner *Runner, sender email.WelcomeSender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{
		runner: runner,
		sender: sender,
		logger: logger.With(slog.String("component", "task_notifier")),
	}
}

// Ensure Notifier implements service.Notifier
var _ service.Notifier = (*Notifier)(nil)

// NotifyWelcome implements service.Notifier.
func (n *Notifier) NotifyWelcome(ctx context.Context, notification service.WelcomeNotification) {
	t, err := NewWelcomeEmailTask(notification.UserID, notification.Email, n.sender, n.logger)
	if err != nil {
		n.logger.Error("failed to build welcome email task",
			"error", err,
			"user_id", notification.UserID)
		return
	}

	if err := n.runner.Submit(ctx, t); err != nil {
		n.logger.Error("failed to enqueue welcome email task",
			"error", err,
			"task_id", t.ID(),
			"user_id", notification.UserID)
	}
}
