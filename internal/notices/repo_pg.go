package notices

import (
	"context"
	"database/sql"
)

// PGLogRepo implements LogRepo using Postgres.
type PGLogRepo struct {
	DB *sql.DB
}

// Insert records a delivery attempt.
func (r *PGLogRepo) Insert(ctx context.Context, log NotificationLog) error {
	const query = `
INSERT INTO notification_logs (id, tenant_id, sent_at, notice_type, status)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, log.ID, nullString(log.TenantID), log.SentAt, log.NoticeType, log.Status)
	return err
}

// List returns log entries newest first.
func (r *PGLogRepo) List(ctx context.Context, tenantID string, limit int) ([]NotificationLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if tenantID != "" {
		rows, err = r.DB.QueryContext(ctx, `
SELECT id, tenant_id, sent_at, notice_type, status
FROM notification_logs
WHERE tenant_id = $1
ORDER BY sent_at DESC
LIMIT $2`, tenantID, limit)
	} else {
		rows, err = r.DB.QueryContext(ctx, `
SELECT id, tenant_id, sent_at, notice_type, status
FROM notification_logs
ORDER BY sent_at DESC
LIMIT $1`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotificationLog
	for rows.Next() {
		var log NotificationLog
		var tenant, noticeType, status sql.NullString
		if err := rows.Scan(&log.ID, &tenant, &log.SentAt, &noticeType, &status); err != nil {
			return nil, err
		}
		log.TenantID = tenant.String
		log.NoticeType = noticeType.String
		log.Status = status.String
		out = append(out, log)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ LogRepo = (*PGLogRepo)(nil)
