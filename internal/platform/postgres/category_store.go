package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/store"
)

// CategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type CategoryStore struct {
	db store.DBTX
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewCategoryStore(db store.DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

// Ensure CategoryStore implements store.CategoryStore.
var _ store.CategoryStore = (*CategoryStore)(nil)

// Create implements store.CategoryStore.Create.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, user_id, title, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.UserID, category.Title, category.Color,
		category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID implements store.CategoryStore.GetByID.
func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, user_id, title, color, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	return scanCategoryRow(s.db.QueryRowContext(ctx, query, id))
}

// GetByTitle implements store.CategoryStore.GetByTitle.
func (s *CategoryStore) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Category, error) {
	query := `
		SELECT id, user_id, title, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND title = $2
	`

	return scanCategoryRow(s.db.QueryRowContext(ctx, query, userID, title))
}

// ListByUser implements store.CategoryStore.ListByUser.
func (s *CategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	query := `
		SELECT id, user_id, title, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// Update implements store.CategoryStore.Update.
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET title = $1, color = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query,
		category.Title, category.Color, time.Now().UTC(), category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}

// Delete implements store.CategoryStore.Delete.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrCategoryNotFound
	}

	return nil
}

func scanCategoryRow(row *sql.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}
