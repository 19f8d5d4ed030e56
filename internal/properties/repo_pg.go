package properties

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new property.
func (r *PGRepo) Create(ctx context.Context, p Property) error {
	const query = `
INSERT INTO properties (id, name, address, created_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Name, nullString(p.Address), p.CreatedAt)
	return err
}

// GetByID fetches a property by ID.
func (r *PGRepo) GetByID(ctx context.Context, propertyID string) (Property, error) {
	const query = `
SELECT id, name, address, created_at
FROM properties
WHERE id = $1
LIMIT 1`
	var p Property
	var address sql.NullString
	err := r.DB.QueryRowContext(ctx, query, propertyID).Scan(&p.ID, &p.Name, &address, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	p.Address = address.String
	return p, nil
}

// List returns all properties ordered by name.
func (r *PGRepo) List(ctx context.Context) ([]Property, error) {
	const query = `
SELECT id, name, address, created_at
FROM properties
ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		var p Property
		var address sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &address, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Address = address.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update overwrites name and address.
func (r *PGRepo) Update(ctx context.Context, p Property) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET name = $1, address = $2 WHERE id = $3`,
		p.Name, nullString(p.Address), p.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a property row. Units cascade in the schema.
func (r *PGRepo) Delete(ctx context.Context, propertyID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, propertyID)
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
