package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"zephvault-backend/internal/shared/storage/object"
	"zephvault-backend/internal/shared/telemetry"
)

// Fixed fallback texts used when no document content can be read. PDF text is
// never extracted programmatically; users paste excerpts instead.
const (
	PlaceholderPDFContent = "PDF file content requires specialized extraction. Analysis based on filename and metadata."

	PlaceholderManualExtraction = "Document content requires manual extraction. " +
		"Copy the relevant text from the document and provide it as an excerpt for analysis."

	placeholderContentError = "Document content could not be extracted. Analysis based on metadata and filename."
)

// bucketSegment is the path segment that precedes the storage key in public
// document URLs.
const bucketSegment = "documents"

// StorageKeyFromURL extracts the storage key from a public document URL.
// URL format: https://host/storage/v1/object/public/documents/<category>/<file>.
func StorageKeyFromURL(fileURL string) (string, error) {
	parts := strings.Split(fileURL, "/")
	bucketIndex := -1
	for i, part := range parts {
		if part == bucketSegment {
			bucketIndex = i
			break
		}
	}
	if bucketIndex == -1 || bucketIndex == len(parts)-1 {
		return "", fmt.Errorf("invalid document URL format: cannot find %s bucket path", bucketSegment)
	}
	return strings.Join(parts[bucketIndex+1:], "/"), nil
}

// IsTextual reports whether the file's content can be decoded directly.
func IsTextual(fileName string) bool {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}

// IsPDF reports whether the file is a PDF.
func IsPDF(fileName string) bool {
	return strings.ToLower(path.Ext(fileName)) == ".pdf"
}

// ContentResolver assembles the textual context available for a document.
// All storage failures degrade to metadata-only fallbacks; the resolver never
// returns an error.
type ContentResolver struct {
	Store object.ObjectStore
}

// FileContent returns the best available raw content for a document: decoded
// text for .txt/.md files, a fixed placeholder for PDFs, and a
// manual-extraction placeholder for everything else.
func (cr ContentResolver) FileContent(ctx context.Context, doc Document) string {
	if IsPDF(doc.FileName) {
		return PlaceholderPDFContent
	}
	if !IsTextual(doc.FileName) {
		return PlaceholderManualExtraction
	}

	key, err := StorageKeyFromURL(doc.FileURL)
	if err != nil {
		telemetry.Warn("document.content.url", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return placeholderContentError
	}

	body, err := cr.Store.Open(ctx, key)
	if err != nil {
		telemetry.Warn("document.content.open", map[string]any{
			"document_id": doc.ID,
			"storage_key": key,
			"error":       err.Error(),
		})
		return placeholderContentError
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		telemetry.Warn("document.content.read", map[string]any{
			"document_id": doc.ID,
			"storage_key": key,
			"error":       err.Error(),
		})
		return placeholderContentError
	}
	return string(raw)
}

// AnalysisContext builds the full context string for a document analysis
// request. Precedence: user excerpt (always included when present) >
// fresh file content > cached summary > bare metadata.
func (cr ContentResolver) AnalysisContext(ctx context.Context, doc Document, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document Analysis Request:\nFile Name: %s\nCategory: %s\nDocument ID: %s",
		doc.FileName, doc.Category, doc.ID)

	if content := cr.FileContent(ctx, doc); content != "" {
		b.WriteString("\n\nDocument Content:\n")
		b.WriteString(content)
	}

	if trimmed := strings.TrimSpace(excerpt); trimmed != "" {
		b.WriteString("\n\nDocument Excerpt (User Provided):\n")
		b.WriteString(trimmed)
	}

	if doc.HasSummary() {
		b.WriteString("\n\nPrevious Summary: ")
		b.WriteString(doc.AISummary)
	}

	return b.String()
}

// ChatContext builds the per-document context used by the conversational
// document chat. PDFs without a cached summary get guidance on sharing
// excerpts manually.
func (cr ContentResolver) ChatContext(ctx context.Context, doc Document) string {
	_ = ctx
	if IsPDF(doc.FileName) {
		if doc.HasSummary() {
			return fmt.Sprintf("Document Summary: %s\n\nNote: This is a summary of the PDF content. For more detailed analysis, please share specific excerpts from the document.", doc.AISummary)
		}
		return fmt.Sprintf(`Document: %s (Category: %s)

This is a PDF document. While I can help analyze legal documents, I currently need you to share specific text excerpts from the document for detailed analysis.

You can help by:
1. Copy and paste specific sections you'd like me to analyze
2. Ask about general legal concepts related to %s documents
3. Share key details like names, dates, or clauses you'd like me to explain

I'm here to help with legal document analysis once you provide the relevant text!`, doc.FileName, doc.Category, doc.Category)
	}

	if doc.HasSummary() {
		return fmt.Sprintf("Document Summary: %s", doc.AISummary)
	}
	return fmt.Sprintf("Document: %s (Category: %s)", doc.FileName, doc.Category)
}

// ExtractText resolves the text returned by the extract endpoint. Text files
// yield decoded content; PDFs yield manual-extraction instructions; failures
// yield troubleshooting guidance. Never an error.
func (cr ContentResolver) ExtractText(ctx context.Context, doc Document) string {
	key, err := StorageKeyFromURL(doc.FileURL)
	if err != nil {
		return extractFailureText(doc, err)
	}

	body, err := cr.Store.Open(ctx, key)
	if err != nil {
		return extractFailureText(doc, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return extractFailureText(doc, err)
	}

	if IsTextual(doc.FileName) {
		return string(raw)
	}

	if IsPDF(doc.FileName) {
		return fmt.Sprintf(`PDF file %q successfully downloaded from storage.

File size: %d KB

The PDF is ready for viewing and text extraction. To analyze the document content:

1. View the PDF in the panel on the right
2. Select and copy relevant text sections
3. Paste into the analysis text area
4. Click "Analyze PDF Content" for detailed AI analysis

Focus on copying sections with:
- Party names and contact information
- Important dates and deadlines
- Financial terms and amounts
- Key clauses and conditions
- Obligations and responsibilities

Manual text selection ensures the most accurate analysis results.`, doc.FileName, len(raw)/1024)
	}

	return fmt.Sprintf(`File %q downloaded successfully but text extraction is not supported for this file type.

Supported formats for automatic text extraction:
- .txt files
- .md files

For PDF files, please use the manual copy-paste method for best results.`, doc.FileName)
}

func extractFailureText(doc Document, err error) string {
	return fmt.Sprintf(`Could not access file %q from storage.

Error details: %s

Troubleshooting steps:
1. Verify the file exists in storage
2. Check storage bucket permissions
3. Ensure the file URL is correct: %s
4. Try refreshing the page

Alternative: Use manual text extraction by copying content directly from the PDF viewer and pasting it into the analysis text area.`, doc.FileName, err.Error(), doc.FileURL)
}
