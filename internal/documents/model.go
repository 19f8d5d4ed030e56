package documents

import "time"

// Document represents an uploaded legal document.
type Document struct {
	ID         string
	FileName   string
	FileURL    string
	Category   string
	UnitID     string
	AISummary  string
	UploadedBy string
	CreatedAt  time.Time
}

// HasSummary reports whether a cached analysis exists for the document.
func (d Document) HasSummary() bool {
	return d.AISummary != ""
}
