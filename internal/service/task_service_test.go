package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planitapp/planit-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTaskInput() TaskInput {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return TaskInput{
		Title:       "water the plants",
		Description: "balcony first",
		StartDate:   start,
		EndDate:     start.Add(time.Hour),
		Status:      domain.TaskStatusPostponed,
	}
}

func TestCreateTask_WithNotification(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := NewTaskService(tasks, newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	input := testTaskInput()
	input.Notification = &NotificationInput{TimeUnit: domain.TimeUnitMinute, TimeValue: 15}

	task, err := svc.CreateTask(ctx, userID, input)
	require.NoError(t, err)
	require.NotNil(t, task.Notification)

	assert.Equal(t, time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC), task.Notification.ScheduledTime)
	assert.False(t, task.Notification.Sent)

	stored, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Notification)
	assert.Equal(t, task.Notification.ScheduledTime, stored.Notification.ScheduledTime)
}

func TestCreateTask_DuplicateTitleInCategory(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(newFakeTaskStore(), newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, userID, testTaskInput())
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, userID, testTaskInput())
	assert.ErrorIs(t, err, ErrTitleExists)
}

func TestCreateTask_SameTitleDifferentUser(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(newFakeTaskStore(), newFakeCategoryStore(), discardLogger())
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, uuid.New(), testTaskInput())
	require.NoError(t, err)

	_, err = svc.CreateTask(ctx, uuid.New(), testTaskInput())
	assert.NoError(t, err)
}

func TestCreateTask_CategoryOwnedByAnotherUser(t *testing.T) {
	t.Parallel()

	categories := newFakeCategoryStore()
	svc := NewTaskService(newFakeTaskStore(), categories, discardLogger())
	ctx := context.Background()

	other, err := domain.NewCategory(uuid.New(), "work", domain.CategoryColorGreen)
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, other))

	input := testTaskInput()
	input.CategoryID = uuid.NullUUID{UUID: other.ID, Valid: true}

	_, err = svc.CreateTask(ctx, uuid.New(), input)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestUpdateTask_ReplacesNotification(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := NewTaskService(tasks, newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	input := testTaskInput()
	input.Notification = &NotificationInput{TimeUnit: domain.TimeUnitMinute, TimeValue: 15}
	task, err := svc.CreateTask(ctx, userID, input)
	require.NoError(t, err)

	// Simulate the reminder having fired already.
	changed, err := tasks.MarkNotificationSent(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, changed)

	// Updating with new settings must produce a fresh, unsent reminder
	// scheduled against the new start date.
	input.StartDate = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	input.EndDate = input.StartDate.Add(time.Hour)
	input.Notification = &NotificationInput{TimeUnit: domain.TimeUnitHour, TimeValue: 2}

	updated, err := svc.UpdateTask(ctx, userID, task.ID, input)
	require.NoError(t, err)
	require.NotNil(t, updated.Notification)

	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), updated.Notification.ScheduledTime)
	assert.False(t, updated.Notification.Sent)
	assert.NotEqual(t, task.Notification.ID, updated.Notification.ID)
}

func TestUpdateTask_ClearsNotification(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := NewTaskService(tasks, newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	input := testTaskInput()
	input.Notification = &NotificationInput{TimeUnit: domain.TimeUnitHour, TimeValue: 1}
	task, err := svc.CreateTask(ctx, userID, input)
	require.NoError(t, err)

	input.Notification = nil
	updated, err := svc.UpdateTask(ctx, userID, task.ID, input)
	require.NoError(t, err)
	assert.Nil(t, updated.Notification)
}

func TestGetTask_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(newFakeTaskStore(), newFakeCategoryStore(), discardLogger())
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, uuid.New(), testTaskInput())
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, uuid.New(), task.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := NewTaskService(tasks, newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, userID, testTaskInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, userID, task.ID))

	_, err = svc.GetTask(ctx, userID, task.ID)
	assert.Error(t, err)
}

func TestListNotifications_OnlyTasksWithReminders(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(newFakeTaskStore(), newFakeCategoryStore(), discardLogger())
	userID := uuid.New()
	ctx := context.Background()

	plain := testTaskInput()
	_, err := svc.CreateTask(ctx, userID, plain)
	require.NoError(t, err)

	withReminder := testTaskInput()
	withReminder.Title = "call the dentist"
	withReminder.Notification = &NotificationInput{TimeUnit: domain.TimeUnitMinute, TimeValue: 30}
	created, err := svc.CreateTask(ctx, userID, withReminder)
	require.NoError(t, err)

	listed, err := svc.ListNotifications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}
