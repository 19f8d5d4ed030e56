package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	List(ctx context.Context, limit, offset int) ([]Document, error)
	Delete(ctx context.Context, documentID string) error
	// UpdateSummary overwrites the cached analysis. Last write wins; concurrent
	// analyses of the same document are not guarded.
	UpdateSummary(ctx context.Context, documentID, summary string) error
}
