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

// NotificationInput carries the caller-supplied reminder settings for a
// task. The scheduled time is always derived from these and the task's
// start date, never supplied directly.
type NotificationInput struct {
	TimeUnit  domain.TimeUnit
	TimeValue int
}

// TaskInput carries the caller-supplied fields for creating or updating
// a task.
type TaskInput struct {
	CategoryID   uuid.NullUUID
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Status       domain.TaskStatus
	Notification *NotificationInput
}

// TaskService provides task-related operations, including the embedded
// notification lifecycle. All operations enforce ownership.
type TaskService interface {
	// CreateTask creates a new task for the user. If input carries
	// notification settings, the reminder's scheduled time is computed
	// from them and the start date. Returns ErrTitleExists if the user
	// already has a task with this title in the same category.
	CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error)

	// GetTask retrieves one of the user's tasks by ID.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks retrieves all tasks owned by the user.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListNotifications retrieves the user's tasks that carry a reminder.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// UpdateTask modifies one of the user's tasks. Notification settings
	// in the input replace any existing reminder and reset its sent flag;
	// a nil Notification clears the reminder.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*domain.Task, error)

	// DeleteTask removes one of the user's tasks.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// Stats aggregates the user's task counts per category and status.
	Stats(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, categoryStore store.CategoryStore, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore:     taskStore,
		categoryStore: categoryStore,
		logger:        logger.With("component", "task_service"),
	}
}

// CreateTask creates a new task for the user.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error) {
	if err := s.checkTitleFree(ctx, userID, input.CategoryID, input.Title, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkCategoryOwned(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(userID, input.CategoryID, input.Title, input.Description,
		input.StartDate, input.EndDate, input.Status)
	if err != nil {
		s.logger.Debug("rejected invalid task input",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if input.Notification != nil {
		if err := task.SetNotification(input.Notification.TimeUnit, input.Notification.TimeValue); err != nil {
			s.logger.Debug("rejected invalid notification settings",
				"error", err,
				"user_id", userID)
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created successfully",
		"task_id", task.ID,
		"user_id", userID,
		"has_notification", task.Notification != nil)

	return task, nil
}

// GetTask retrieves one of the user's tasks by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// ListTasks retrieves all tasks owned by the user.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// ListNotifications retrieves the user's tasks that carry a reminder.
func (s *TaskServiceImpl) ListNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListWithNotifications(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list notifications",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return tasks, nil
}

// UpdateTask modifies one of the user's tasks.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*domain.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != task.Title || input.CategoryID != task.CategoryID {
		if err := s.checkTitleFree(ctx, userID, input.CategoryID, input.Title, taskID); err != nil {
			return nil, err
		}
	}
	if err := s.checkCategoryOwned(ctx, userID, input.CategoryID); err != nil {
		return nil, err
	}

	task.CategoryID = input.CategoryID
	task.Title = input.Title
	task.Description = input.Description
	task.StartDate = input.StartDate.UTC()
	task.EndDate = input.EndDate.UTC()
	task.Status = input.Status

	// The reminder is replaced wholesale so its scheduled time always
	// reflects the current start date. An update without notification
	// settings clears any existing reminder.
	if input.Notification != nil {
		if err := task.SetNotification(input.Notification.TimeUnit, input.Notification.TimeValue); err != nil {
			s.logger.Debug("rejected invalid notification settings",
				"error", err,
				"task_id", taskID)
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	} else {
		task.ClearNotification()
	}

	if err := task.Validate(); err != nil {
		s.logger.Debug("rejected invalid task update",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated successfully",
		"task_id", taskID,
		"user_id", userID,
		"has_notification", task.Notification != nil)

	return task, nil
}

// DeleteTask removes one of the user's tasks.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", taskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted successfully",
		"task_id", taskID,
		"user_id", userID)

	return nil
}

// Stats aggregates the user's task counts per category and status.
func (s *TaskServiceImpl) Stats(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error) {
	stats, err := s.taskStore.StatsByCategory(ctx, userID)
	if err != nil {
		s.logger.Error("failed to aggregate task stats",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to aggregate task stats: %w", err)
	}

	return stats, nil
}

func (s *TaskServiceImpl) getOwned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Error("failed to retrieve task",
				"error", err,
				"task_id", taskID)
		}
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	if task.UserID != userID {
		s.logger.Warn("denied access to task owned by another user",
			"task_id", taskID,
			"user_id", userID)
		return nil, ErrNotOwned
	}

	return task, nil
}

func (s *TaskServiceImpl) checkTitleFree(
	ctx context.Context,
	userID uuid.UUID,
	categoryID uuid.NullUUID,
	title string,
	excludeID uuid.UUID,
) error {
	existing, err := s.taskStore.GetByTitle(ctx, userID, categoryID, title)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil
		}
		s.logger.Error("failed to check task title uniqueness",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to check task title: %w", err)
	}

	if existing.ID != excludeID {
		return ErrTitleExists
	}
	return nil
}

func (s *TaskServiceImpl) checkCategoryOwned(ctx context.Context, userID uuid.UUID, categoryID uuid.NullUUID) error {
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
