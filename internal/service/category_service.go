package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/store"
)

// CategoryService provides category-related operations. All operations
// enforce ownership: a user can never observe or modify another user's
// categories.
type CategoryService interface {
	// CreateCategory creates a new category for the user.
	// Returns ErrTitleExists if the user already has one with this title.
	CreateCategory(ctx context.Context, userID uuid.UUID, title string, color domain.CategoryColor) (*domain.Category, error)

	// GetCategory retrieves one of the user's categories by ID.
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// ListCategories retrieves all categories owned by the user.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// UpdateCategory modifies the title and color of one of the user's
	// categories. Returns ErrTitleExists if the new title collides with
	// another of the user's categories.
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, title string, color domain.CategoryColor) (*domain.Category, error)

	// DeleteCategory removes one of the user's categories.
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) CategoryService {
	return &CategoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With("component", "category_service"),
	}
}

// CreateCategory creates a new category for the user.
func (s *CategoryServiceImpl) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	color domain.CategoryColor,
) (*domain.Category, error) {
	if err := s.checkTitleFree(ctx, userID, title, uuid.Nil); err != nil {
		return nil, err
	}

	category, err := domain.NewCategory(userID, title, color)
	if err != nil {
		s.logger.Debug("rejected invalid category input",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := s.categoryStore.Create(ctx, category); err != nil {
		s.logger.Error("failed to save category",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created successfully",
		"category_id", category.ID,
		"user_id", userID)

	return category, nil
}

// GetCategory retrieves one of the user's categories by ID.
func (s *CategoryServiceImpl) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	return s.getOwned(ctx, userID, categoryID)
}

// ListCategories retrieves all categories owned by the user.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	categories, err := s.categoryStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list categories",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// UpdateCategory modifies one of the user's categories.
func (s *CategoryServiceImpl) UpdateCategory(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	title string,
	color domain.CategoryColor,
) (*domain.Category, error) {
	category, err := s.getOwned(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if title != category.Title {
		if err := s.checkTitleFree(ctx, userID, title, categoryID); err != nil {
			return nil, err
		}
	}

	category.Title = title
	category.Color = color
	if err := category.Validate(); err != nil {
		s.logger.Debug("rejected invalid category update",
			"error", err,
			"category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := s.categoryStore.Update(ctx, category); err != nil {
		s.logger.Error("failed to update category",
			"error", err,
			"category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("category updated successfully",
		"category_id", categoryID,
		"user_id", userID)

	return category, nil
}

// DeleteCategory removes one of the user's categories.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryStore.Delete(ctx, categoryID); err != nil {
		s.logger.Error("failed to delete category",
			"error", err,
			"category_id", categoryID)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted successfully",
		"category_id", categoryID,
		"user_id", userID)

	return nil
}

// getOwned loads a category and verifies the caller owns it. A category
// owned by someone else yields ErrNotOwned, never the other user's data.
func (s *CategoryServiceImpl) getOwned(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, store.ErrCategoryNotFound) {
			s.logger.Error("failed to retrieve category",
				"error", err,
				"category_id", categoryID)
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", err)
	}

	if category.UserID != userID {
		s.logger.Warn("denied access to category owned by another user",
			"category_id", categoryID,
			"user_id", userID)
		return nil, ErrNotOwned
	}

	return category, nil
}

// checkTitleFree returns ErrTitleExists if the user already has a different
// category with the given title. excludeID skips the category being updated.
func (s *CategoryServiceImpl) checkTitleFree(ctx context.Context, userID uuid.UUID, title string, excludeID uuid.UUID) error {
	existing, err := s.categoryStore.GetByTitle(ctx, userID, title)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			return nil
		}
		s.logger.Error("failed to check category title uniqueness",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to check category title: %w", err)
	}

	if existing.ID != excludeID {
		return ErrTitleExists
	}
	return nil
}
