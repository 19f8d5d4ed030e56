package notices

import "context"

// LogRepo records and lists delivery attempts.
type LogRepo interface {
	Insert(ctx context.Context, log NotificationLog) error
	// List returns log entries newest first, optionally filtered by tenant.
	List(ctx context.Context, tenantID string, limit int) ([]NotificationLog, error)
}
