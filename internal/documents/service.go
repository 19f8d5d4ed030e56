package documents

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"zephvault-backend/internal/shared/storage/object"
	"zephvault-backend/internal/shared/telemetry"
	"zephvault-backend/internal/shared/util"
)

// defaultPublicBase mirrors the public object path exposed by the storage
// gateway when no explicit base URL is configured.
const defaultPublicBase = "/storage/v1/object/public"

// Service contains business logic for documents.
type Service struct {
	Store         object.ObjectStore
	Repo          Repo
	PublicBaseURL string
}

// UploadInput carries the fields needed to store a new document.
type UploadInput struct {
	FileName   string
	Category   string
	UnitID     string
	UploadedBy string
	Body       io.Reader
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Document, error) {
	fileName, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return Document{}, ErrInvalidInput
	}
	category := util.SanitizeCategory(in.Category)

	storageKey, _, _, err := s.Store.Save(ctx, category, fileName, in.Body)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		FileName:   fileName,
		FileURL:    s.publicURL(storageKey),
		Category:   category,
		UnitID:     in.UnitID,
		UploadedBy: in.UploadedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		// The object is orphaned if the insert fails; remove it.
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("document.upload.cleanup", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return Document{}, err
	}

	return doc, nil
}

// Get returns a single document by id.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, documentID)
}

// List returns documents newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// Delete removes the document record and its stored object. The object
// removal is best effort; a stale object is preferable to a dangling record.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, documentID); err != nil {
		return err
	}
	if key, kerr := StorageKeyFromURL(doc.FileURL); kerr == nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			telemetry.Warn("document.delete.object", map[string]any{
				"document_id": documentID,
				"storage_key": key,
				"error":       derr.Error(),
			})
		}
	}
	return nil
}

// UpdateSummary overwrites the cached analysis for a document.
func (s *Service) UpdateSummary(ctx context.Context, documentID, summary string) error {
	if documentID == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateSummary(ctx, documentID, summary)
}

func (s *Service) publicURL(storageKey string) string {
	base := strings.TrimRight(s.PublicBaseURL, "/")
	if base == "" {
		base = defaultPublicBase
	}
	return base + "/" + bucketSegment + "/" + storageKey
}
