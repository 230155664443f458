package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByTitle retrieves a user's category by title, used for
	// per-user uniqueness checks. Returns ErrCategoryNotFound if no
	// such category exists.
	GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Category, error)

	// ListByUser retrieves all categories owned by the given user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update modifies an existing category's title and color.
	// Returns ErrCategoryNotFound if the category does not exist.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category from the store by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
