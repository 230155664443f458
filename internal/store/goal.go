package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
)

// GoalStore defines the interface for goal data persistence.
type GoalStore interface {
	// Create saves a new goal to the store.
	Create(ctx context.Context, goal *domain.Goal) error

	// GetByID retrieves a goal by its unique ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// GetByTitle retrieves a user's goal by title, used for per-user
	// uniqueness checks. Returns ErrGoalNotFound if no such goal exists.
	GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Goal, error)

	// ListByUser retrieves all goals owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)

	// Update modifies an existing goal.
	// Returns ErrGoalNotFound if the goal does not exist.
	Update(ctx context.Context, goal *domain.Goal) error

	// Delete removes a goal from the store by its ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
