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

// GoalStore implements the store.GoalStore interface using a PostgreSQL
// database as the storage backend.
type GoalStore struct {
	db store.DBTX
}

// NewGoalStore creates a new PostgreSQL implementation of the GoalStore
// interface.
func NewGoalStore(db store.DBTX) *GoalStore {
	return &GoalStore{db: db}
}

// Ensure GoalStore implements store.GoalStore.
var _ store.GoalStore = (*GoalStore)(nil)

const goalColumns = `id, user_id, title, description, category_id, end_date, priority, status, created_at, updated_at`

// Create implements store.GoalStore.Create.
func (s *GoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.CategoryID,
		goal.EndDate, goal.Priority, goal.Status, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetByID implements store.GoalStore.GetByID.
func (s *GoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`
	return scanGoalRow(s.db.QueryRowContext(ctx, query, id))
}

// GetByTitle implements store.GoalStore.GetByTitle.
func (s *GoalStore) GetByTitle(ctx context.Context, userID uuid.UUID, title string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 AND title = $2`
	return scanGoalRow(s.db.QueryRowContext(ctx, query, userID, title))
}

// ListByUser implements store.GoalStore.ListByUser.
func (s *GoalStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}

	return goals, nil
}

// Update implements store.GoalStore.Update.
func (s *GoalStore) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $1, description = $2, category_id = $3, end_date = $4,
		    priority = $5, status = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		goal.Title, goal.Description, goal.CategoryID, goal.EndDate,
		goal.Priority, goal.Status, time.Now().UTC(), goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrGoalNotFound
	}

	return nil
}

// Delete implements store.GoalStore.Delete.
func (s *GoalStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrGoalNotFound
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.CategoryID,
		&g.EndDate, &g.Priority, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan goal row: %w", err)
	}

	return &g, nil
}

func scanGoalRow(row *sql.Row) (*domain.Goal, error) {
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}
