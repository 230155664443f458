package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/planitapp/planit-api/internal/api/shared"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/service"
)

// TaskHandler handles task CRUD API requests, plus the notifications
// listing and the per-category stats endpoint.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, taskInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), userID, taskID, taskInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListNotifications handles GET /notifications: every reminder belonging
// to the authenticated user, flattened with its task context.
func (h *TaskHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListNotifications(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	notifications := make([]NotificationResponse, 0, len(tasks))
	for _, task := range tasks {
		if task.Notification == nil {
			continue
		}
		notifications = append(notifications, notificationResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notifications)
}

// Stats handles GET /tasks/stats: per-category counts of the user's tasks
// grouped by status.
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.taskService.Stats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if stats == nil {
		stats = []*domain.TaskStatsByCategory{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

func (h *TaskHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}

	return req, true
}

func taskInput(req TaskRequest) service.TaskInput {
	input := service.TaskInput{
		CategoryID:  nullableID(req.CategoryID),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.TaskStatus(req.Status),
	}
	if req.Notification != nil {
		input.Notification = &service.NotificationInput{
			TimeUnit:  domain.TimeUnit(req.Notification.TimeUnit),
			TimeValue: req.Notification.TimeValue,
		}
	}
	return input
}
