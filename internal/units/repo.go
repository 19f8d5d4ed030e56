package units

import "context"

// Repo defines persistence operations for units.
type Repo interface {
	Create(ctx context.Context, u Unit) error
	GetByID(ctx context.Context, unitID string) (Unit, error)
	// List returns all units, or only those under propertyID when non-empty.
	List(ctx context.Context, propertyID string) ([]Unit, error)
	UpdateStatus(ctx context.Context, unitID, status string) error
	Delete(ctx context.Context, unitID string) error
}
