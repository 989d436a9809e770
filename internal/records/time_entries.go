package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/metalagman/freelo/internal/model"
)

const timeEntryColumns = `id, owner_id, project_id, task_id, description, started_at, ended_at, duration_minutes, billable, created_at`

// ErrTimerRunning is returned when starting a timer on a project that already has one.
var ErrTimerRunning = errors.New("timer already running")

// StartTimer opens a time entry on one of the owner's projects.
func (s *Store) StartTimer(ctx context.Context, e model.TimeEntry) (model.TimeEntry, error) {
	if e.OwnerID == "" {
		return model.TimeEntry{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if _, err := s.GetProject(ctx, e.OwnerID, e.ProjectID); err != nil {
		return model.TimeEntry{}, fmt.Errorf("time entry project: %w", err)
	}
	if e.TaskID != nil && *e.TaskID == "" {
		e.TaskID = nil
	}
	if e.TaskID != nil {
		if _, err := s.GetTask(ctx, e.OwnerID, *e.TaskID); err != nil {
			return model.TimeEntry{}, fmt.Errorf("time entry task: %w", err)
		}
	}
	var running int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM time_entries WHERE owner_id=? AND project_id=? AND ended_at IS NULL`,
		e.OwnerID, e.ProjectID).Scan(&running); err != nil {
		return model.TimeEntry{}, fmt.Errorf("count running timers: %w", err)
	}
	if running > 0 {
		return model.TimeEntry{}, fmt.Errorf("project %s: %w", e.ProjectID, ErrTimerRunning)
	}
	now := s.timestamp()
	e.ID = newID()
	if e.StartedAt.IsZero() {
		e.StartedAt = now
	}
	e.EndedAt = nil
	e.DurationMinutes = 0
	e.CreatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO time_entries(`+timeEntryColumns+`) VALUES(?, ?, ?, ?, ?, ?, NULL, 0, ?, ?)`,
		e.ID, e.OwnerID, e.ProjectID, nullableStringPtr(e.TaskID), e.Description, formatTime(e.StartedAt),
		boolInt(e.Billable), formatTime(e.CreatedAt))
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("insert time entry: %w", err)
	}
	return e, nil
}

// StopTimer closes a running entry and records its duration in whole minutes.
func (s *Store) StopTimer(ctx context.Context, ownerID, id string) (model.TimeEntry, error) {
	e, err := s.GetTimeEntry(ctx, ownerID, id)
	if err != nil {
		return model.TimeEntry{}, err
	}
	if !e.Running() {
		return e, nil
	}
	ended := s.timestamp()
	e.EndedAt = &ended
	e.DurationMinutes = durationMinutes(e.StartedAt, ended)
	res, err := s.db.ExecContext(ctx, `UPDATE time_entries SET ended_at=?, duration_minutes=? WHERE owner_id=? AND id=?`,
		formatTime(ended), e.DurationMinutes, ownerID, id)
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("stop time entry: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return model.TimeEntry{}, fmt.Errorf("stop time entry %s: %w", id, err)
	}
	return e, nil
}

// ListTimeEntries returns the owner's entries, optionally for one project, newest first.
func (s *Store) ListTimeEntries(ctx context.Context, ownerID, projectID string) ([]model.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE owner_id=?`
	args := []any{ownerID}
	if projectID != "" {
		query += " AND project_id=?"
		args = append(args, projectID)
	}
	query += " ORDER BY started_at DESC, id"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()
	var out []model.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}
	return out, nil
}

// GetTimeEntry fetches one of the owner's time entries.
func (s *Store) GetTimeEntry(ctx context.Context, ownerID, id string) (model.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+timeEntryColumns+` FROM time_entries WHERE owner_id=? AND id=?`, ownerID, id)
	e, err := scanTimeEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TimeEntry{}, fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return e, err
}

// DeleteTimeEntry removes one of the owner's time entries.
func (s *Store) DeleteTimeEntry(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete time entry %s: %w", id, err)
	}
	return nil
}

func scanTimeEntry(row scanner) (model.TimeEntry, error) {
	var e model.TimeEntry
	var taskID, endedAt sql.NullString
	var startedAt, createdAt string
	var billable int
	if err := row.Scan(&e.ID, &e.OwnerID, &e.ProjectID, &taskID, &e.Description, &startedAt, &endedAt, &e.DurationMinutes, &billable, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TimeEntry{}, err
		}
		return model.TimeEntry{}, fmt.Errorf("scan time entry: %w", err)
	}
	e.TaskID = stringPtr(taskID)
	e.Billable = billable != 0
	var err error
	if e.StartedAt, err = parseTime(startedAt); err != nil {
		return model.TimeEntry{}, fmt.Errorf("parse time entry started_at: %w", err)
	}
	if e.EndedAt, err = parseNullTime(endedAt); err != nil {
		return model.TimeEntry{}, fmt.Errorf("parse time entry ended_at: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.TimeEntry{}, fmt.Errorf("parse time entry created_at: %w", err)
	}
	return e, nil
}

func durationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Minutes()))
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
