package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
)

// TaskStore defines the interface for task data persistence, including
// the two operations the notification scheduler depends on:
// FindDueUnsent and MarkNotificationSent.
type TaskStore interface {
	// Create saves a new task, including its embedded notification if any.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByTitle retrieves a user's task by category and title, used for
	// uniqueness checks. Returns ErrTaskNotFound if no such task exists.
	GetByTitle(ctx context.Context, userID uuid.UUID, categoryID uuid.NullUUID, title string) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListWithNotifications retrieves the user's tasks that carry a
	// notification, for the notifications endpoint.
	ListWithNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update modifies an existing task, replacing its embedded
	// notification wholesale (a nil Notification clears it).
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// StatsByCategory aggregates the user's task counts per category
	// and status.
	StatsByCategory(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error)

	// FindDueUnsent returns every task whose embedded notification has
	// sent == false and a scheduled time within the closed interval
	// [lower, upper]. Tasks without a notification are never returned.
	FindDueUnsent(ctx context.Context, lower, upper time.Time) ([]*domain.Task, error)

	// MarkNotificationSent atomically flips the task's notification to
	// sent, but only if it is currently unsent. It reports whether a
	// change occurred: false means another actor already marked it or
	// the task no longer exists, both benign outcomes. Implementations
	// must perform this as a single conditional write, not a
	// read-then-write pair.
	MarkNotificationSent(ctx context.Context, taskID uuid.UUID) (bool, error)
}
