package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planitapp/planit-api/internal/api/shared"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/service"
)

// mockTaskService implements service.TaskService with per-method hooks.
type mockTaskService struct {
	createFn func(ctx context.Context, userID uuid.UUID, input service.TaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	notifFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	updateFn func(ctx context.Context, userID, taskID uuid.UUID, input service.TaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, userID, taskID uuid.UUID) error
	statsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error)
}

func (m *mockTaskService) CreateTask(ctx context.Context, userID uuid.UUID, input service.TaskInput) (*domain.Task, error) {
	return m.createFn(ctx, userID, input)
}

func (m *mockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return m.getFn(ctx, userID, taskID)
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return m.listFn(ctx, userID)
}

func (m *mockTaskService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return m.notifFn(ctx, userID)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input service.TaskInput) (*domain.Task, error) {
	return m.updateFn(ctx, userID, taskID, input)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	return m.deleteFn(ctx, userID, taskID)
}

func (m *mockTaskService) Stats(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error) {
	return m.statsFn(ctx, userID)
}

var _ service.TaskService = (*mockTaskService)(nil)

// authedRequest builds a request carrying an authenticated user ID, the way
// the auth middleware would.
func authedRequest(t *testing.T, method, target string, body any, userID uuid.UUID) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func validTaskRequest() TaskRequest {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return TaskRequest{
		Title:     "water the plants",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		Status:    "POSTPONED",
	}
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &mockTaskService{
		createFn: func(_ context.Context, gotUser uuid.UUID, input service.TaskInput) (*domain.Task, error) {
			assert.Equal(t, userID, gotUser)
			require.NotNil(t, input.Notification)
			assert.Equal(t, domain.TimeUnitMinute, input.Notification.TimeUnit)
			assert.Equal(t, 15, input.Notification.TimeValue)

			task, err := domain.NewTask(gotUser, input.CategoryID, input.Title,
				input.Description, input.StartDate, input.EndDate, input.Status)
			require.NoError(t, err)
			require.NoError(t, task.SetNotification(input.Notification.TimeUnit, input.Notification.TimeValue))
			return task, nil
		},
	}
	handler := NewTaskHandler(svc)

	body := validTaskRequest()
	body.Notification = &NotificationRequest{TimeUnit: "MINUTE", TimeValue: 15}

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(t, http.MethodPost, "/api/tasks", body, userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var got domain.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "water the plants", got.Title)
	require.NotNil(t, got.Notification)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 45, 0, 0, time.UTC), got.Notification.ScheduledTime)
}

func TestTaskHandler_Create_ValidationError(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&mockTaskService{})

	body := validTaskRequest()
	body.Status = "FINISHED" // Not one of the allowed values.

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(t, http.MethodPost, "/api/tasks", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&mockTaskService{})

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(validTaskRequest()))
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", &buf)

	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskHandler_Get_NotOwned(t *testing.T) {
	t.Parallel()

	svc := &mockTaskService{
		getFn: func(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
			return nil, service.ErrNotOwned
		},
	}
	handler := NewTaskHandler(svc)

	taskID := uuid.New()
	req := authedRequest(t, http.MethodGet, "/api/tasks/"+taskID.String(), nil, uuid.New())
	req = withChiParam(req, "id", taskID.String())

	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskHandler_Get_BadID(t *testing.T) {
	t.Parallel()

	handler := NewTaskHandler(&mockTaskService{})

	req := authedRequest(t, http.MethodGet, "/api/tasks/not-a-uuid", nil, uuid.New())
	req = withChiParam(req, "id", "not-a-uuid")

	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ListNotifications(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	task, err := domain.NewTask(userID, uuid.NullUUID{}, "standup", "",
		start, start.Add(time.Hour), domain.TaskStatusPostponed)
	require.NoError(t, err)
	require.NoError(t, task.SetNotification(domain.TimeUnitMinute, 15))

	svc := &mockTaskService{
		notifFn: func(_ context.Context, _ uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{task}, nil
		},
	}
	handler := NewTaskHandler(svc)

	w := httptest.NewRecorder()
	handler.ListNotifications(w, authedRequest(t, http.MethodGet, "/api/notifications", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var got []NotificationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, task.ID, got[0].TaskID)
	assert.Equal(t, "standup", got[0].TaskTitle)
	assert.Equal(t, "MINUTE", got[0].TimeUnit)
	assert.False(t, got[0].Sent)
}

func TestTaskHandler_Stats(t *testing.T) {
	t.Parallel()

	svc := &mockTaskService{
		statsFn: func(_ context.Context, _ uuid.UUID) ([]*domain.TaskStatsByCategory, error) {
			return []*domain.TaskStatsByCategory{
				{Category: "work", DoneCount: 3, PostponedCount: 1},
			}, nil
		},
	}
	handler := NewTaskHandler(svc)

	w := httptest.NewRecorder()
	handler.Stats(w, authedRequest(t, http.MethodGet, "/api/tasks/stats", nil, uuid.New()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed_count":3`)
}

// withChiParam attaches a chi route parameter to the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
