package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shedai/internal/parse"
)

// TaskRepository persists deadline-bound tasks per user.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Save inserts a parsed task and returns its ID.
func (r *TaskRepository) Save(ctx context.Context, userID string, task *parse.TaskRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, deadline, deadline_time, importance, difficulty,
		                    description, is_active, strict_deadline, needs_focus, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, task.Title, task.Deadline, task.DeadlineTime, task.Importance, task.Difficulty,
		task.Description, task.IsActive, task.StrictDeadline, task.NeedsFocus, task.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert task: %w", err)
	}
	return result.LastInsertId()
}

// ListOpen returns a user's active tasks with deadlines at or after now,
// nearest deadline first.
func (r *TaskRepository) ListOpen(ctx context.Context, userID string, now time.Time) ([]parse.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, deadline, deadline_time, importance, difficulty, description,
		        is_active, strict_deadline, needs_focus, created_at
		 FROM tasks
		 WHERE user_id = ? AND is_active = 1 AND deadline >= ?
		 ORDER BY deadline`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []parse.TaskRecord
	for rows.Next() {
		var task parse.TaskRecord
		if err := rows.Scan(&task.Title, &task.Deadline, &task.DeadlineTime,
			&task.Importance, &task.Difficulty, &task.Description,
			&task.IsActive, &task.StrictDeadline, &task.NeedsFocus, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.PersistAsTask = true
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Complete deactivates a task.
func (r *TaskRepository) Complete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}
