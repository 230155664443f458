package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/store"
)

// GoalInput carries the caller-supplied fields for creating or updating
// a goal.
type GoalInput struct {
	Title       string
	Description string
	CategoryID  uuid.NullUUID
	EndDate     *time.Time
	Priority    domain.GoalPriority
	Status      domain.GoalStatus
}

// GoalService provides goal-related operations. All operations enforce
// ownership.
type GoalService interface {
	// CreateGoal creates a new goal for the user. The goal starts in the
	// NOT_REACHED status regardless of input. Returns ErrTitleExists if
	// the user already has a goal with this title.
	CreateGoal(ctx context.Context, userID uuid.UUID, input GoalInput) (*domain.Goal, error)

	// GetGoal retrieves one of the user's goals by ID.
	GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error)

	// ListGoals retrieves all goals owned by the user.
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)

	// UpdateGoal modifies one of the user's goals, including its status.
	UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, input GoalInput) (*domain.Goal, error)

	// DeleteGoal removes one of the user's goals.
	DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error
}

// GoalServiceImpl implements the GoalService interface
type GoalServiceImpl struct {
	goalStore     store.GoalStore
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewGoalService creates a new GoalService
func NewGoalService(goalStore store.GoalStore, categoryStore store.CategoryStore, logger *slog.Logger) GoalService {
	return &GoalServiceImpl{
		goalStore:     goalStore,
		categoryStore: categoryStore,
		logger:        logger.With("component", "goal_service"),
	}
}

// CreateGoal creates a new goal for the user.
func (s *GoalServiceImpl) CreateGoal(ctx context.Context, userID uuid.UUID, input GoalInput) (*domain.Goal, error) {
	if err := s.checkTitleFree(ctx, userID, input.Title, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkCategoryOwned(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	goal, err := domain.NewGoal(userID, input.Title, input.Description, input.CategoryID, input.EndDate, input.Priority)
	if err != nil {
		s.logger.Debug("rejected invalid goal input",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	if err := s.goalStore.Create(ctx, goal); err != nil {
		s.logger.Error("failed to save goal",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.Info("goal created successfully",
		"goal_id", goal.ID,
		"user_id", userID)

	return goal, nil
}

// GetGoal retrieves one of the user's goals by ID.
func (s *GoalServiceImpl) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error) {
	return s.getOwned(ctx, userID, goalID)
}

// ListGoals retrieves all goals owned by the user.
func (s *GoalServiceImpl) ListGoals(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	goals, err := s.goalStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list goals",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return goals, nil
}

// UpdateGoal modifies one of the user's goals.
func (s *GoalServiceImpl) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, input GoalInput) (*domain.Goal, error) {
	goal, err := s.getOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Title != goal.Title {
		if err := s.checkTitleFree(ctx, userID, input.Title, goalID); err != nil {
			return nil, err
		}
	}
	if err := s.checkCategoryOwned(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	goal.Title = input.Title
	goal.Description = input.Description
	goal.CategoryID = input.CategoryID
	goal.EndDate = input.EndDate
	goal.Priority = input.Priority
	goal.Status = input.Status
	if err := goal.Validate(); err != nil {
		s.logger.Debug("rejected invalid goal update",
			"error", err,
			"goal_id", goalID)
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	if err := s.goalStore.Update(ctx, goal); err != nil {
		s.logger.Error("failed to update goal",
			"error", err,
			"goal_id", goalID)
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.logger.Info("goal updated successfully",
		"goal_id", goalID,
		"user_id", userID)

	return goal, nil
}

// DeleteGoal removes one of the user's goals.
func (s *GoalServiceImpl) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalStore.Delete(ctx, goalID); err != nil {
		s.logger.Error("failed to delete goal",
			"error", err,
			"goal_id", goalID)
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.logger.Info("goal deleted successfully",
		"goal_id", goalID,
		"user_id", userID)

	return nil
}

func (s *GoalServiceImpl) getOwned(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalStore.GetByID(ctx, goalID)
	if err != nil {
		if !errors.Is(err, store.ErrGoalNotFound) {
			s.logger.Error("failed to retrieve goal",
				"error", err,
				"goal_id", goalID)
		}
		return nil, fmt.Errorf("failed to retrieve goal: %w", err)
	}

	if goal.UserID != userID {
		s.logger.Warn("denied access to goal owned by another user",
			"goal_id", goalID,
			"user_id", userID)
		return nil, ErrNotOwned
	}

	return goal, nil
}

func (s *GoalServiceImpl) checkTitleFree(ctx context.Context, userID uuid.UUID, title string, excludeID uuid.UUID) error {
	existing, err := s.goalStore.GetByTitle(ctx, userID, title)
	if err != nil {
		if errors.Is(err, store.ErrGoalNotFound) {
			return nil
		}
		s.logger.Error("failed to check goal title uniqueness",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to check goal title: %w", err)
	}

	if existing.ID != excludeID {
		return ErrTitleExists
	}
	return nil
}

// checkCategoryOwned verifies that a referenced category exists and belongs
// to the user. A null reference is always fine.
func (s *GoalServiceImpl) checkCategoryOwned(ctx context.Context, userID uuid.UUID, categoryID uuid.NullUUID) error {
	if !categoryID.Valid {
		return nil
	}

	category, err := s.categoryStore.GetByID(ctx, categoryID.UUID)
	if err != nil {
		if !errors.Is(err, store.ErrCategoryNotFound) {
			s.logger.Error("failed to retrieve referenced category",
				"error", err,
				"category_id", categoryID.UUID)
		}
		return fmt.Errorf("failed to retrieve referenced category: %w", err)
	}

	if category.UserID != userID {
		return ErrNotOwned
	}
	return nil
}
