package units

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new unit.
func (r *PGRepo) Create(ctx context.Context, u Unit) error {
	const query = `
INSERT INTO units (id, property_id, unit_number, status, created_at)
VALUES ($1, $2, $3, $4, $5)`
	status := u.Status
	if status == "" {
		status = StatusVacant
	}
	_, err := r.DB.ExecContext(ctx, query, u.ID, nullString(u.PropertyID), u.UnitNumber, status, u.CreatedAt)
	return err
}

// GetByID fetches a unit by ID.
func (r *PGRepo) GetByID(ctx context.Context, unitID string) (Unit, error) {
	const query = `
SELECT id, property_id, unit_number, status, created_at
FROM units
WHERE id = $1
LIMIT 1`
	var u Unit
	var propertyID sql.NullString
	err := r.DB.QueryRowContext(ctx, query, unitID).Scan(&u.ID, &propertyID, &u.UnitNumber, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Unit{}, ErrNotFound
		}
		return Unit{}, err
	}
	u.PropertyID = propertyID.String
	return u, nil
}

// List returns units ordered by unit number, optionally scoped to a property.
func (r *PGRepo) List(ctx context.Context, propertyID string) ([]Unit, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if propertyID != "" {
		rows, err = r.DB.QueryContext(ctx, `
SELECT id, property_id, unit_number, status, created_at
FROM units
WHERE property_id = $1
ORDER BY unit_number`, propertyID)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
SELECT id, property_id, unit_number, status, created_at
FROM units
ORDER BY unit_number`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		var propID sql.NullString
		if err := rows.Scan(&u.ID, &propID, &u.UnitNumber, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.PropertyID = propID.String
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateStatus flips the occupancy state.
func (r *PGRepo) UpdateStatus(ctx context.Context, unitID, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE units SET status = $1 WHERE id = $2`, status, unitID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a unit row.
func (r *PGRepo) Delete(ctx context.Context, unitID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, unitID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
