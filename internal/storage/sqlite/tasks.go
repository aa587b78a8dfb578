package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"todoweb/internal/models"
	"todoweb/internal/storage"
)

var _ storage.TaskStore = (*Store)(nil)

// CreateTask inserts a new pending task for the owner.
func (s *Store) CreateTask(ctx context.Context, ownerID, title, description string) (models.Task, error) {
	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Title == "" {
		return models.Task{}, fmt.Errorf("task title must not be empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(id, owner_id, title, description, status, created_at, updated_at)
         VALUES(?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.OwnerID, task.Title, task.Description, task.Status, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

// ListTasks returns the owner's tasks matching the filter, most recent
// first. Deleted tasks never appear, whatever the filter.
func (s *Store) ListTasks(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	query := `SELECT id, owner_id, title, description, status, created_at, updated_at
        FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}

	switch filter {
	case models.FilterPending:
		query += ` AND status = ?`
		args = append(args, models.StatusPending)
	case models.FilterCompleted:
		query += ` AND status = ?`
		args = append(args, models.StatusCompleted)
	default:
		query += ` AND status != ?`
		args = append(args, models.StatusDeleted)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id, scoped to the owner.
func (s *Store) GetTask(ctx context.Context, taskID, ownerID string) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, status, created_at, updated_at
         FROM tasks WHERE id = ? AND owner_id = ?`, taskID, ownerID).
		Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, storage.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// SetTaskStatus applies the status to the task. The owner id in the WHERE
// clause makes cross-user mutation indistinguishable from a missing task.
func (s *Store) SetTaskStatus(ctx context.Context, taskID, ownerID string, status models.TaskStatus) (models.Task, error) {
	if _, ok := models.ValidTaskStatuses[status]; !ok {
		return models.Task{}, fmt.Errorf("invalid task status %q", status)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		status, time.Now().UTC(), taskID, ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, storage.ErrTaskNotFound
	}

	return s.GetTask(ctx, taskID, ownerID)
}

// SoftDeleteTask marks the task deleted. Repeating the call for an already
// deleted task succeeds again.
func (s *Store) SoftDeleteTask(ctx context.Context, taskID, ownerID string) error {
	_, err := s.SetTaskStatus(ctx, taskID, ownerID, models.StatusDeleted)
	return err
}
