package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// GoalPriority indicates how important a goal is to its owner.
type GoalPriority string

// Possible goal priority values.
const (
	GoalPriorityHigh   GoalPriority = "HIGH"
	GoalPriorityMedium GoalPriority = "MEDIUM"
	GoalPriorityLow    GoalPriority = "LOW"
)

// GoalStatus tracks how far along a goal is.
type GoalStatus string

// Possible goal status values.
const (
	GoalStatusNotReached       GoalStatus = "NOT_REACHED"
	GoalStatusPartiallyReached GoalStatus = "PARTIALLY_REACHED"
	GoalStatusReached          GoalStatus = "REACHED"
)

// Common validation errors for Goal.
var (
	ErrEmptyGoalID         = errors.New("goal ID cannot be empty")
	ErrEmptyGoalUserID     = errors.New("goal user ID cannot be empty")
	ErrEmptyGoalTitle      = errors.New("goal title cannot be empty")
	ErrInvalidGoalPriority = errors.New("invalid goal priority")
	ErrInvalidGoalStatus   = errors.New("invalid goal status")
)

// Goal is a longer-horizon objective a user works toward. Unlike tasks,
// goals carry no notification; the scheduler never reads them.
type Goal struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"-"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	CategoryID  uuid.NullUUID `json:"category_id,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	Priority    GoalPriority  `json:"priority"`
	Status      GoalStatus    `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewGoal creates a new Goal owned by the given user. New goals start in
// the NOT_REACHED status. Returns an error if validation fails.
func NewGoal(
	userID uuid.UUID,
	title, description string,
	categoryID uuid.NullUUID,
	endDate *time.Time,
	priority GoalPriority,
) (*Goal, error) {
	now := time.Now().UTC()
	goal := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		EndDate:     endDate,
		Priority:    priority,
		Status:      GoalStatusNotReached,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	return goal, nil
}

// Validate checks if the Goal has valid data.
func (g *Goal) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGoalID
	}

	if g.UserID == uuid.Nil {
		return ErrEmptyGoalUserID
	}

	if g.Title == "" {
		return ErrEmptyGoalTitle
	}

	if !isValidGoalPriority(g.Priority) {
		return ErrInvalidGoalPriority
	}

	if !isValidGoalStatus(g.Status) {
		return ErrInvalidGoalStatus
	}

	return nil
}

func isValidGoalPriority(priority GoalPriority) bool {
	switch priority {
	case GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow:
		return true
	default:
		return false
	}
}

func isValidGoalStatus(status GoalStatus) bool {
	switch status {
	case GoalStatusNotReached, GoalStatusPartiallyReached, GoalStatusReached:
		return true
	default:
		return false
	}
}
