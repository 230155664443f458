package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus reflects how a task turned out. The values are chosen by the
// CRUD surface and are opaque to the notification scheduler.
type TaskStatus string

// Possible task status values.
const (
	TaskStatusDone          TaskStatus = "DONE"
	TaskStatusPartiallyDone TaskStatus = "PARTIALLY_DONE"
	TaskStatusPostponed     TaskStatus = "POSTPONED"
)

// Common validation errors for Task.
var (
	ErrEmptyTaskID          = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID      = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle       = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong     = errors.New("task title must be at most 30 characters long")
	ErrTaskDescTooLong      = errors.New("task description must be at most 100 characters long")
	ErrEndBeforeStart       = errors.New("task end date cannot precede its start date")
)

// Task is a dated to-do item owned by a user. It may carry at most one
// embedded Notification; a nil Notification means no reminder was
// requested.
type Task struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"-"`
	CategoryID   uuid.NullUUID `json:"category_id,omitempty"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       TaskStatus    `json:"status"`
	Notification *Notification `json:"notification,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. Dates are normalized
// to UTC. Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	categoryID uuid.NullUUID,
	title, description string,
	startDate, endDate time.Time,
	status TaskStatus,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: description,
		StartDate:   startDate.UTC(),
		EndDate:     endDate.UTC(),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// SetNotification attaches a reminder fired value units before the task's
// start date, replacing any existing one. The scheduled time is fixed here
// and never re-derived.
func (t *Task) SetNotification(unit TimeUnit, value int) error {
	notification, err := NewNotification(unit, value, t.StartDate)
	if err != nil {
		return err
	}

	t.Notification = notification
	return nil
}

// ClearNotification removes the task's reminder, if any.
func (t *Task) ClearNotification() {
	t.Notification = nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > 30 {
		return ErrTaskTitleTooLong
	}

	if len(t.Description) > 100 {
		return ErrTaskDescTooLong
	}

	if t.EndDate.Before(t.StartDate) {
		return ErrEndBeforeStart
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.Notification != nil {
		if err := t.Notification.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusDone, TaskStatusPartiallyDone, TaskStatusPostponed:
		return true
	default:
		return false
	}
}

// TaskStatsByCategory aggregates a user's task counts per category and
// outcome, for the stats endpoint.
type TaskStatsByCategory struct {
	Category           string `json:"category"`
	DoneCount          int    `json:"completed_count"`
	PostponedCount     int    `json:"postponed_count"`
	PartiallyDoneCount int    `json:"partially_completed_count"`
}
