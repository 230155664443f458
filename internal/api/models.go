package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/planitapp/planit-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CategoryRequest defines the payload for creating or updating a category.
type CategoryRequest struct {
	Title string `json:"title" validate:"required,max=30"`
	Color string `json:"color" validate:"required,oneof=ORANGE YELLOW GREEN"`
}

// GoalRequest defines the payload for creating or updating a goal.
type GoalRequest struct {
	Title       string     `json:"title"       validate:"required,max=30"`
	Description string     `json:"description" validate:"max=100"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Priority    string     `json:"priority" validate:"required,oneof=HIGH MEDIUM LOW"`
	// Status is ignored on create; new goals always start NOT_REACHED.
	Status string `json:"status,omitempty" validate:"omitempty,oneof=NOT_REACHED PARTIALLY_REACHED REACHED"`
}

// NotificationRequest defines the reminder settings embedded in a task
// payload. The reminder fires time_value time_units before the task starts.
type NotificationRequest struct {
	TimeUnit  string `json:"time_unit"  validate:"required,oneof=MINUTE HOUR"`
	TimeValue int    `json:"time_value" validate:"required,gt=0"`
}

// TaskRequest defines the payload for creating or updating a task.
type TaskRequest struct {
	Title        string               `json:"title"       validate:"required,max=30"`
	Description  string               `json:"description" validate:"max=100"`
	CategoryID   *uuid.UUID           `json:"category_id,omitempty"`
	StartDate    time.Time            `json:"start_date" validate:"required"`
	EndDate      time.Time            `json:"end_date"   validate:"required"`
	Status       string               `json:"status"     validate:"required,oneof=DONE PARTIALLY_DONE POSTPONED"`
	Notification *NotificationRequest `json:"notification,omitempty"`
}

// NotificationResponse is one entry in the user's notifications listing:
// the reminder plus enough of its task to render it.
type NotificationResponse struct {
	TaskID        uuid.UUID `json:"task_id"`
	TaskTitle     string    `json:"task_title"`
	StartDate     time.Time `json:"start_date"`
	TimeUnit      string    `json:"time_unit"`
	TimeValue     int       `json:"time_value"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Sent          bool      `json:"sent"`
}

// nullableID converts an optional request UUID to the domain representation.
func nullableID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// notificationResponse flattens a task's embedded reminder for listing.
func notificationResponse(task *domain.Task) NotificationResponse {
	n := task.Notification
	return NotificationResponse{
		TaskID:        task.ID,
		TaskTitle:     task.Title,
		StartDate:     task.StartDate,
		TimeUnit:      string(n.TimeUnit),
		TimeValue:     n.TimeValue,
		ScheduledTime: n.ScheduledTime,
		Sent:          n.Sent,
	}
}
