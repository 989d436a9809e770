package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/metalagman/freelo/internal/model"
)

const clientColumns = `id, owner_id, name, email, company, phone, status, created_at, updated_at`

// ClientUpdate carries the client fields to change; nil fields are left alone.
type ClientUpdate struct {
	Name    *string
	Email   *string
	Company *string
	Phone   *string
	Status  *string
}

// InsertClient creates a client owned by c.OwnerID.
func (s *Store) InsertClient(ctx context.Context, c model.Client) (model.Client, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.OwnerID == "" {
		return model.Client{}, fmt.Errorf("%w: owner is required", ErrInvalid)
	}
	if c.Name == "" {
		return model.Client{}, fmt.Errorf("%w: client name is required", ErrInvalid)
	}
	if c.Status == "" {
		c.Status = model.ClientActive
	}
	if !model.ValidClientStatus(c.Status) {
		return model.Client{}, fmt.Errorf("%w: unknown client status %q", ErrInvalid, c.Status)
	}
	now := s.timestamp()
	c.ID = newID()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `INSERT INTO clients(`+clientColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Name, c.Email, c.Company, c.Phone, c.Status, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return model.Client{}, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

// ListClients returns the owner's clients ordered by name.
func (s *Store) ListClients(ctx context.Context, ownerID string) ([]model.Client, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE owner_id=? ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()
	var out []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

// GetClient fetches one of the owner's clients.
func (s *Store) GetClient(ctx context.Context, ownerID, id string) (model.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE owner_id=? AND id=?`, ownerID, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return c, err
}

// UpdateClient applies a partial update and returns the stored client.
func (s *Store) UpdateClient(ctx context.Context, ownerID, id string, upd ClientUpdate) (model.Client, error) {
	c, err := s.GetClient(ctx, ownerID, id)
	if err != nil {
		return model.Client{}, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return model.Client{}, fmt.Errorf("%w: client name is required", ErrInvalid)
		}
		c.Name = name
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Company != nil {
		c.Company = *upd.Company
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Status != nil {
		if !model.ValidClientStatus(*upd.Status) {
			return model.Client{}, fmt.Errorf("%w: unknown client status %q", ErrInvalid, *upd.Status)
		}
		c.Status = *upd.Status
	}
	c.UpdatedAt = s.timestamp()
	res, err := s.db.ExecContext(ctx, `UPDATE clients SET name=?, email=?, company=?, phone=?, status=?, updated_at=?
		WHERE owner_id=? AND id=?`,
		c.Name, c.Email, c.Company, c.Phone, c.Status, formatTime(c.UpdatedAt), ownerID, id)
	if err != nil {
		return model.Client{}, fmt.Errorf("update client: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return model.Client{}, fmt.Errorf("update client %s: %w", id, err)
	}
	return c, nil
}

// DeleteClient removes one of the owner's clients. Projects keep existing
// without a client.
func (s *Store) DeleteClient(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE owner_id=? AND id=?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}

func scanClient(row scanner) (model.Client, error) {
	var c model.Client
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.Status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Client{}, err
		}
		return model.Client{}, fmt.Errorf("scan client: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Client{}, fmt.Errorf("parse client created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Client{}, fmt.Errorf("parse client updated_at: %w", err)
	}
	return c, nil
}
