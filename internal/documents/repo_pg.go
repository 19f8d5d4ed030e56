package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    file_name,
    file_url,
    category,
    unit_id,
    ai_summary,
    uploaded_by,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	category := doc.Category
	if category == "" {
		category = "general"
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.FileName,
		doc.FileURL,
		category,
		nullString(doc.UnitID),
		nullString(doc.AISummary),
		nullString(doc.UploadedBy),
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT id, file_name, file_url, category, unit_id, ai_summary, uploaded_by, created_at
FROM documents
WHERE id = $1
LIMIT 1`
	var doc Document
	var unitID, summary, uploadedBy sql.NullString
	err := r.DB.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID,
		&doc.FileName,
		&doc.FileURL,
		&doc.Category,
		&unitID,
		&summary,
		&uploadedBy,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	doc.UnitID = unitID.String
	doc.AISummary = summary.String
	doc.UploadedBy = uploadedBy.String
	return doc, nil
}

// List returns documents ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, file_name, file_url, category, unit_id, ai_summary, uploaded_by, created_at
FROM documents
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var unitID, summary, uploadedBy sql.NullString
		if err := rows.Scan(
			&doc.ID,
			&doc.FileName,
			&doc.FileURL,
			&doc.Category,
			&unitID,
			&summary,
			&uploadedBy,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		doc.UnitID = unitID.String
		doc.AISummary = summary.String
		doc.UploadedBy = uploadedBy.String
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document row.
func (r *PGRepo) Delete(ctx context.Context, documentID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSummary overwrites the cached analysis with last-write-wins semantics.
func (r *PGRepo) UpdateSummary(ctx context.Context, documentID, summary string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE documents SET ai_summary = $1 WHERE id = $2`, summary, documentID)
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
