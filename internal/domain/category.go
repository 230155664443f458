package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CategoryColor is the display color assigned to a category.
type CategoryColor string

// Possible category color values.
const (
	CategoryColorOrange CategoryColor = "ORANGE"
	CategoryColorYellow CategoryColor = "YELLOW"
	CategoryColorGreen  CategoryColor = "GREEN"
)

// Common validation errors for Category.
var (
	ErrEmptyCategoryID      = errors.New("category ID cannot be empty")
	ErrEmptyCategoryUserID  = errors.New("category user ID cannot be empty")
	ErrEmptyCategoryTitle   = errors.New("category title cannot be empty")
	ErrCategoryTitleTooLong = errors.New("category title must be at most 30 characters long")
	ErrInvalidCategoryColor = errors.New("invalid category color")
)

// Category groups a user's tasks. Category titles are unique per user;
// the service layer enforces that rule.
type Category struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"-"`
	Title     string        `json:"title"`
	Color     CategoryColor `json:"color"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewCategory creates a new Category owned by the given user.
// Returns an error if validation fails.
func NewCategory(userID uuid.UUID, title string, color CategoryColor) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCategoryUserID
	}

	if c.Title == "" {
		return ErrEmptyCategoryTitle
	}

	if len(c.Title) > 30 {
		return ErrCategoryTitleTooLong
	}

	if !isValidCategoryColor(c.Color) {
		return ErrInvalidCategoryColor
	}

	return nil
}

func isValidCategoryColor(color CategoryColor) bool {
	switch color {
	case CategoryColorOrange, CategoryColorYellow, CategoryColorGreen:
		return true
	default:
		return false
	}
}
