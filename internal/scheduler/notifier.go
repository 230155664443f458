package scheduler

import (
	"context"
	"log/slog"

	"github.com/planitapp/planit-api/internal/domain"
)

// Notifier delivers a due reminder to its owner over some transport.
// Implementations must respect ctx cancellation; the dispatcher bounds
// every delivery attempt with a timeout.
type Notifier interface {
	Notify(ctx context.Context, task *domain.Task) error
}

// LogNotifier is the default Notifier. It writes the reminder to the
// structured log instead of an external channel, which keeps the dispatch
// pipeline fully exercised until a push or email transport is plugged in.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. If logger is nil, the default
// logger is used.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{
		logger: logger.With(slog.String("component", "log_notifier")),
	}
}

var _ Notifier = (*LogNotifier)(nil)

// Notify implements the Notifier interface.
func (n *LogNotifier) Notify(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "task reminder due",
		"task_id", task.ID,
		"user_id", task.UserID,
		"title", task.Title,
		"starts_at", task.StartDate,
		"scheduled_time", task.Notification.ScheduledTime)

	return nil
}
