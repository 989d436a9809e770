package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/metalagman/freelo/internal/model"
)

const projectColumns = `id, owner_id, client_id, name, description, status, hourly_rate, created_at, updated_at`

// ProjectUpdate carries the project fields to change; nil fields are left alone.
type ProjectUpdate struct {
	ClientID    *string
	Name        *string
	Description *string
	Status      *string
	HourlyRate  *float64
}

// InsertProject creates a project owned by p.OwnerID.
func (s *Store) InsertProject(ctx context.Context, p model.Project) (model.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.OwnerID == "" {
		return model.Project{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if p.Name == "" {
		return model.Project{}, fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if !model.ValidProjectStatus(p.Status) {
		return model.Project{}, fmt.Errorf("%w: unknown project status %q", ErrInvalid, p.Status)
	}
	if p.ClientID != nil && *p.ClientID != "" {
		if _, err := s.GetClient(ctx, p.OwnerID, *p.ClientID); err != nil {
			return model.Project{}, fmt.Errorf("project client: %w", err)
		}
	}
	now := s.timestamp()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects(`+projectColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, nullableStringPtr(p.ClientID), p.Name, p.Description, p.Status, p.HourlyRate,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return model.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// ListProjectRefs returns the owner's project ids and names, oldest first.
func (s *Store) ListProjectRefs(ctx context.Context, ownerID string) ([]model.ProjectRef, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM projects WHERE owner_id=? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query project refs: %w", err)
	}
	defer rows.Close()
	out := []model.ProjectRef{}
	for rows.Next() {
		var ref model.ProjectRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scan project ref: %w", err)
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project refs: %w", err)
	}
	return out, nil
}

// ListProjects returns the owner's projects filtered by status (optional).
func (s *Store) ListProjects(ctx context.Context, ownerID string, status *string) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id=?`
	args := []any{ownerID}
	if status != nil {
		query += " AND status=?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at, id"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()
	var out []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// GetProject fetches one of the owner's projects.
func (s *Store) GetProject(ctx context.Context, ownerID, id string) (model.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE owner_id=? AND id=?`, ownerID, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

// UpdateProject applies a partial update and returns the stored project.
func (s *Store) UpdateProject(ctx context.Context, ownerID, id string, upd ProjectUpdate) (model.Project, error) {
	p, err := s.GetProject(ctx, ownerID, id)
	if err != nil {
		return model.Project{}, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return model.Project{}, fmt.Errorf("%w: project name is required", ErrInvalid)
		}
		p.Name = name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Status != nil {
		if !model.ValidProjectStatus(*upd.Status) {
			return model.Project{}, fmt.Errorf("%w: unknown project status %q", ErrInvalid, *upd.Status)
		}
		p.Status = *upd.Status
	}
	if upd.HourlyRate != nil {
		p.HourlyRate = *upd.HourlyRate
	}
	if upd.ClientID != nil {
		if *upd.ClientID == "" {
			p.ClientID = nil
		} else {
			if _, err := s.GetClient(ctx, ownerID, *upd.ClientID); err != nil {
				return model.Project{}, fmt.Errorf("project client: %w", err)
			}
			clientID := *upd.ClientID
			p.ClientID = &clientID
		}
	}
	p.UpdatedAt = s.timestamp()
	res, err := s.db.ExecContext(ctx, `UPDATE projects SET client_id=?, name=?, description=?, status=?, hourly_rate=?, updated_at=?
		WHERE owner_id=? AND id=?`,
		nullableStringPtr(p.ClientID), p.Name, p.Description, p.Status, p.HourlyRate, formatTime(p.UpdatedAt), ownerID, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("update project: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return model.Project{}, fmt.Errorf("update project %s: %w", id, err)
	}
	return p, nil
}

// DeleteProject removes one of the owner's projects.
func (s *Store) DeleteProject(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

func scanProject(row scanner) (model.Project, error) {
	var p model.Project
	var clientID sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.OwnerID, &clientID, &p.Name, &p.Description, &p.Status, &p.HourlyRate, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, err
		}
		return model.Project{}, fmt.Errorf("scan project: %w", err)
	}
	p.ClientID = stringPtr(clientID)
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Project{}, fmt.Errorf("parse project created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Project{}, fmt.Errorf("parse project updated_at: %w", err)
	}
	return p, nil
}
