package tenants

import "context"

// Repo defines persistence operations for tenants.
type Repo interface {
	Create(ctx context.Context, t Tenant) error
	GetByID(ctx context.Context, tenantID string) (Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
	Update(ctx context.Context, t Tenant) error
	Delete(ctx context.Context, tenantID string) error

	// GetUnitView returns the tenant joined with unit and property plus the
	// derived schedule fields.
	GetUnitView(ctx context.Context, tenantID string) (TenantUnit, error)
	// ListNeedingReminders returns active tenants whose due date is exactly
	// 30, 7, or 1 day away.
	ListNeedingReminders(ctx context.Context) ([]Reminder, error)
}
