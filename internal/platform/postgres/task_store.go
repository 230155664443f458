package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planitapp/planit-api/internal/domain"
	"github.com/planitapp/planit-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. The embedded notification is stored in
// nullable columns of the task row itself, which keeps MarkNotificationSent
// a single-row conditional update.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If logger is nil, the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

const taskColumns = `id, user_id, category_id, title, description, start_date, end_date, status,
	notification_id, time_unit, time_value, scheduled_time, sent, created_at, updated_at`

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	n := notificationFields(task.Notification)
	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.CategoryID, task.Title, task.Description,
		task.StartDate, task.EndDate, task.Status,
		n.id, n.timeUnit, n.timeValue, n.scheduledTime, n.sent,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// GetByTitle implements store.TaskStore.GetByTitle.
func (s *TaskStore) GetByTitle(
	ctx context.Context,
	userID uuid.UUID,
	categoryID uuid.NullUUID,
	title string,
) (*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND category_id IS NOT DISTINCT FROM $2 AND title = $3
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, userID, categoryID, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser.
func (s *TaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY start_date ASC`
	return s.queryTasks(ctx, query, userID)
}

// ListWithNotifications implements store.TaskStore.ListWithNotifications.
func (s *TaskStore) ListWithNotifications(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND notification_id IS NOT NULL
		ORDER BY scheduled_time ASC
	`
	return s.queryTasks(ctx, query, userID)
}

// Update implements store.TaskStore.Update. The embedded notification is
// replaced wholesale: a task without one clears all notification columns.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET category_id = $1, title = $2, description = $3, start_date = $4,
		    end_date = $5, status = $6, notification_id = $7, time_unit = $8,
		    time_value = $9, scheduled_time = $10, sent = $11, updated_at = $12
		WHERE id = $13
	`

	n := notificationFields(task.Notification)
	result, err := s.db.ExecContext(ctx, query,
		task.CategoryID, task.Title, task.Description, task.StartDate,
		task.EndDate, task.Status,
		n.id, n.timeUnit, n.timeValue, n.scheduledTime, n.sent,
		time.Now().UTC(), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// StatsByCategory implements store.TaskStore.StatsByCategory.
func (s *TaskStore) StatsByCategory(ctx context.Context, userID uuid.UUID) ([]*domain.TaskStatsByCategory, error) {
	query := `
		SELECT c.title,
		       COUNT(*) FILTER (WHERE t.status = 'DONE'),
		       COUNT(*) FILTER (WHERE t.status = 'POSTPONED'),
		       COUNT(*) FILTER (WHERE t.status = 'PARTIALLY_DONE')
		FROM tasks t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		GROUP BY c.title
		ORDER BY c.title
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []*domain.TaskStatsByCategory
	for rows.Next() {
		var st domain.TaskStatsByCategory
		if err := rows.Scan(&st.Category, &st.DoneCount, &st.PostponedCount, &st.PartiallyDoneCount); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats = append(stats, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats rows: %w", err)
	}

	return stats, nil
}

// FindDueUnsent implements store.TaskStore.FindDueUnsent. The interval is
// closed on both ends. Rows whose notification columns fail to decode are
// logged and skipped; a malformed document must never abort a scan.
func (s *TaskStore) FindDueUnsent(ctx context.Context, lower, upper time.Time) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE notification_id IS NOT NULL
		  AND sent = FALSE
		  AND scheduled_time >= $1
		  AND scheduled_time <= $2
	`

	rows, err := s.db.QueryContext(ctx, query, lower.UTC(), upper.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Warn("skipping malformed task row in due scan", "error", err)
			continue
		}
		if err := task.Notification.Validate(); err != nil {
			s.logger.Warn("skipping task with invalid notification",
				"task_id", task.ID, "error", err)
			continue
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due notification rows: %w", err)
	}

	return tasks, nil
}

// MarkNotificationSent implements store.TaskStore.MarkNotificationSent.
// The write is a single conditional UPDATE so that concurrent markers
// cannot both observe a change.
func (s *TaskStore) MarkNotificationSent(ctx context.Context, taskID uuid.UUID) (bool, error) {
	query := `
		UPDATE tasks
		SET sent = TRUE, updated_at = $1
		WHERE id = $2 AND notification_id IS NOT NULL AND sent = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), taskID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// notifCols carries the nullable notification column values for writes.
type notifCols struct {
	id            uuid.NullUUID
	timeUnit      sql.NullString
	timeValue     sql.NullInt32
	scheduledTime sql.NullTime
	sent          sql.NullBool
}

func notificationFields(n *domain.Notification) notifCols {
	if n == nil {
		return notifCols{}
	}

	return notifCols{
		id:            uuid.NullUUID{UUID: n.ID, Valid: true},
		timeUnit:      sql.NullString{String: string(n.TimeUnit), Valid: true},
		timeValue:     sql.NullInt32{Int32: int32(n.TimeValue), Valid: true},
		scheduledTime: sql.NullTime{Time: n.ScheduledTime, Valid: true},
		sent:          sql.NullBool{Bool: n.Sent, Valid: true},
	}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var n notifCols

	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
		&t.StartDate, &t.EndDate, &t.Status,
		&n.id, &n.timeUnit, &n.timeValue, &n.scheduledTime, &n.sent,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	if n.id.Valid {
		t.Notification = &domain.Notification{
			ID:            n.id.UUID,
			TimeUnit:      domain.TimeUnit(n.timeUnit.String),
			TimeValue:     int(n.timeValue.Int32),
			ScheduledTime: n.scheduledTime.Time.UTC(),
			Sent:          n.sent.Bool,
		}
	}

	return &t, nil
}
