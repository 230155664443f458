package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/planitapp/planit-api/internal/api/shared"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/service"
)

// GoalHandler handles goal CRUD API requests.
type GoalHandler struct {
	goalService service.GoalService
	validator   *validator.Validate
}

// NewGoalHandler creates a new GoalHandler with the given dependencies.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validator:   validator.New(),
	}
}

// Create handles POST /goals.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), userID, goalInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, goal)
}

// Get handles GET /goals/{id}.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(r.Context(), userID, goalID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goal)
}

// List handles GET /goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if goals == nil {
		goals = []*domain.Goal{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goals)
}

// Update handles PUT /goals/{id}.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	input := goalInput(req)
	if req.Status == "" {
		// An update that omits status keeps the goal's current one; the
		// service validates after merging.
		current, err := h.goalService.GetGoal(r.Context(), userID, goalID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		input.Status = current.Status
	}

	goal, err := h.goalService.UpdateGoal(r.Context(), userID, goalID, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goal)
}

// Delete handles DELETE /goals/{id}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), userID, goalID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (GoalRequest, bool) {
	var req GoalRequest
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

func goalInput(req GoalRequest) service.GoalInput {
	return service.GoalInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  nullableID(req.CategoryID),
		EndDate:     req.EndDate,
		Priority:    domain.GoalPriority(req.Priority),
		Status:      domain.GoalStatus(req.Status),
	}
}
