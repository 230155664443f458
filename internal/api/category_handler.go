package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/planitapp/planit-api/internal/api/shared"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/service"
)

// CategoryHandler handles category CRUD API requests.
type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
	}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), userID,
		req.Title, domain.CategoryColor(req.Color))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// Update handles PUT /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), userID, categoryID,
		req.Title, domain.CategoryColor(req.Color))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (CategoryRequest, bool) {
	var req CategoryRequest
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
