package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/metalagman/freelo/internal/model"
)

const taskColumns = `id, owner_id, project_id, title, description, status, priority, due_date, created_at, updated_at`

// TaskFilter narrows ListTasks; empty fields match everything.
type TaskFilter struct {
	ProjectID string
	Status    string
	Priority  string
}

// TaskUpdate carries the task fields to change; nil fields are left alone.
// An empty ProjectID detaches the task from its project.
type TaskUpdate struct {
	ProjectID   *string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// InsertTask creates a task owned by t.OwnerID. A project id must name one of
// the owner's projects.
func (s *Store) InsertTask(ctx context.Context, t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.OwnerID == "" {
		return model.Task{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if t.Title == "" {
		return model.Task{}, fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	if t.Status == "" {
		t.Status = model.TaskTodo
	}
	if !model.ValidTaskStatus(t.Status) {
		return model.Task{}, fmt.Errorf("%w: unknown task status %q", ErrInvalid, t.Status)
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if !model.ValidPriority(t.Priority) {
		return model.Task{}, fmt.Errorf("%w: unknown task priority %q", ErrInvalid, t.Priority)
	}
	if t.ProjectID != nil && *t.ProjectID == "" {
		t.ProjectID = nil
	}
	if t.ProjectID != nil {
		if _, err := s.GetProject(ctx, t.OwnerID, *t.ProjectID); err != nil {
			return model.Task{}, fmt.Errorf("task project: %w", err)
		}
	}
	now := s.timestamp()
	t.ID = newID()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(`+taskColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, nullableStringPtr(t.ProjectID), t.Title, t.Description, t.Status, t.Priority,
		formatTimePtr(t.DueDate), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// ListTasks returns the owner's tasks matching filter.
func (s *Store) ListTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id=?`
	args := []any{ownerID}
	if filter.ProjectID != "" {
		query += " AND project_id=?"
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		query += " AND status=?"
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += " AND priority=?"
		args = append(args, filter.Priority)
	}
	query += " ORDER BY created_at, id"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()
	var out []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

// GetTask fetches one of the owner's tasks.
func (s *Store) GetTask(ctx context.Context, ownerID, id string) (model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE owner_id=? AND id=?`, ownerID, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// UpdateTask applies a partial update and returns the stored task.
func (s *Store) UpdateTask(ctx context.Context, ownerID, id string, upd TaskUpdate) (model.Task, error) {
	t, err := s.GetTask(ctx, ownerID, id)
	if err != nil {
		return model.Task{}, err
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return model.Task{}, fmt.Errorf("%w: task title is required", ErrInvalid)
		}
		t.Title = title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		if !model.ValidTaskStatus(*upd.Status) {
			return model.Task{}, fmt.Errorf("%w: unknown task status %q", ErrInvalid, *upd.Status)
		}
		t.Status = *upd.Status
	}
	if upd.Priority != nil {
		if !model.ValidPriority(*upd.Priority) {
			return model.Task{}, fmt.Errorf("%w: unknown task priority %q", ErrInvalid, *upd.Priority)
		}
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		due := *upd.DueDate
		t.DueDate = &due
	}
	if upd.ProjectID != nil {
		if *upd.ProjectID == "" {
			t.ProjectID = nil
		} else {
			if _, err := s.GetProject(ctx, ownerID, *upd.ProjectID); err != nil {
				return model.Task{}, fmt.Errorf("task project: %w", err)
			}
			projectID := *upd.ProjectID
			t.ProjectID = &projectID
		}
	}
	t.UpdatedAt = s.timestamp()
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET project_id=?, title=?, description=?, status=?, priority=?, due_date=?, updated_at=?
		WHERE owner_id=? AND id=?`,
		nullableStringPtr(t.ProjectID), t.Title, t.Description, t.Status, t.Priority, formatTimePtr(t.DueDate),
		formatTime(t.UpdatedAt), ownerID, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return model.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// MarkTaskStatus is a shortcut for a status-only update.
func (s *Store) MarkTaskStatus(ctx context.Context, ownerID, id, status string) (model.Task, error) {
	return s.UpdateTask(ctx, ownerID, id, TaskUpdate{Status: &status})
}

// DeleteTask removes one of the owner's tasks.
func (s *Store) DeleteTask(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func scanTask(row scanner) (model.Task, error) {
	var t model.Task
	var projectID, dueDate sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.OwnerID, &projectID, &t.Title, &t.Description, &t.Status, &t.Priority, &dueDate, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scan task: %w", err)
	}
	t.ProjectID = stringPtr(projectID)
	var err error
	if t.DueDate, err = parseNullTime(dueDate); err != nil {
		return model.Task{}, fmt.Errorf("parse task due_date: %w", err)
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Task{}, fmt.Errorf("parse task created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Task{}, fmt.Errorf("parse task updated_at: %w", err)
	}
	return t, nil
}
