package documents

import (
	"context"
	"strings"
	"testing"
	"time"

	localstore "zephvault-backend/internal/shared/storage/object/local"
)

func TestStorageKeyFromURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "public supabase-style url",
			url:  "https://example.co/storage/v1/object/public/documents/lease/agreement.txt",
			want: "lease/agreement.txt",
		},
		{
			name: "relative url",
			url:  "/storage/v1/object/public/documents/general/notes.md",
			want: "general/notes.md",
		},
		{
			name:    "missing bucket segment",
			url:     "https://example.co/files/lease/agreement.txt",
			wantErr: true,
		},
		{
			name:    "bucket segment at end",
			url:     "https://example.co/storage/documents",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StorageKeyFromURL(tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got key %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected key %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFileContentReadsTextFiles(t *testing.T) {
	store := localstore.New(t.TempDir())
	key, _, _, err := store.Save(context.Background(), "lease", "agreement.txt", strings.NewReader("Tenant: John Doe"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	resolver := ContentResolver{Store: store}
	doc := Document{
		ID:       "doc-1",
		FileName: "agreement.txt",
		FileURL:  "/storage/v1/object/public/documents/" + key,
	}

	got := resolver.FileContent(context.Background(), doc)
	if got != "Tenant: John Doe" {
		t.Fatalf("expected decoded content, got %q", got)
	}
}

func TestFileContentPDFPlaceholder(t *testing.T) {
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{ID: "doc-1", FileName: "lease.pdf", FileURL: "/documents/lease/lease.pdf"}

	got := resolver.FileContent(context.Background(), doc)
	if got != PlaceholderPDFContent {
		t.Fatalf("expected PDF placeholder, got %q", got)
	}
}

func TestFileContentUnsupportedExtension(t *testing.T) {
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{ID: "doc-1", FileName: "scan.jpg", FileURL: "/documents/general/scan.jpg"}

	got := resolver.FileContent(context.Background(), doc)
	if got != PlaceholderManualExtraction {
		t.Fatalf("expected manual extraction placeholder, got %q", got)
	}
}

func TestFileContentDegradesOnStorageFailure(t *testing.T) {
	// The key parses but nothing is stored under it.
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{
		ID:       "doc-1",
		FileName: "agreement.txt",
		FileURL:  "/storage/v1/object/public/documents/lease/missing.txt",
	}

	got := resolver.FileContent(context.Background(), doc)
	if got != placeholderContentError {
		t.Fatalf("expected content error placeholder, got %q", got)
	}
}

func TestAnalysisContextPrecedence(t *testing.T) {
	store := localstore.New(t.TempDir())
	key, _, _, err := store.Save(context.Background(), "lease", "agreement.txt", strings.NewReader("Landlord: Jane Smith"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	resolver := ContentResolver{Store: store}
	doc := Document{
		ID:        "doc-1",
		FileName:  "agreement.txt",
		Category:  "lease",
		FileURL:   "/storage/v1/object/public/documents/" + key,
		AISummary: "Cached summary text",
		CreatedAt: time.Now().UTC(),
	}

	got := resolver.AnalysisContext(context.Background(), doc, "  Clause 4: rent doubles  ")

	for _, want := range []string{
		"Document Analysis Request:",
		"File Name: agreement.txt",
		"Category: lease",
		"Document ID: doc-1",
		"Document Content:\nLandlord: Jane Smith",
		"Document Excerpt (User Provided):\nClause 4: rent doubles",
		"Previous Summary: Cached summary text",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("context missing %q:\n%s", want, got)
		}
	}

	// Excerpt must come after file content, summary last.
	content := strings.Index(got, "Document Content:")
	excerpt := strings.Index(got, "Document Excerpt (User Provided):")
	summary := strings.Index(got, "Previous Summary:")
	if !(content < excerpt && excerpt < summary) {
		t.Fatalf("sections out of order: content=%d excerpt=%d summary=%d", content, excerpt, summary)
	}
}

func TestChatContextPDFWithoutSummary(t *testing.T) {
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{ID: "doc-1", FileName: "lease.pdf", Category: "lease"}

	got := resolver.ChatContext(context.Background(), doc)
	if !strings.Contains(got, "This is a PDF document.") {
		t.Fatalf("expected excerpt guidance, got %q", got)
	}
	if !strings.Contains(got, "lease documents") {
		t.Fatalf("expected category guidance, got %q", got)
	}
}

func TestChatContextPrefersCachedSummary(t *testing.T) {
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{ID: "doc-1", FileName: "lease.pdf", Category: "lease", AISummary: "Key terms: ..."}

	got := resolver.ChatContext(context.Background(), doc)
	if !strings.HasPrefix(got, "Document Summary: Key terms: ...") {
		t.Fatalf("expected summary-first context, got %q", got)
	}
}

func TestExtractTextForTextFile(t *testing.T) {
	store := localstore.New(t.TempDir())
	key, _, _, err := store.Save(context.Background(), "general", "notes.md", strings.NewReader("# Meeting notes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	resolver := ContentResolver{Store: store}
	doc := Document{
		ID:       "doc-1",
		FileName: "notes.md",
		FileURL:  "/storage/v1/object/public/documents/" + key,
	}

	got := resolver.ExtractText(context.Background(), doc)
	if got != "# Meeting notes" {
		t.Fatalf("expected raw content, got %q", got)
	}
}

func TestExtractTextFailureGuidance(t *testing.T) {
	resolver := ContentResolver{Store: localstore.New(t.TempDir())}
	doc := Document{
		ID:       "doc-1",
		FileName: "lease.pdf",
		FileURL:  "/storage/v1/object/public/documents/lease/missing.pdf",
	}

	got := resolver.ExtractText(context.Background(), doc)
	if !strings.Contains(got, "Could not access file") {
		t.Fatalf("expected troubleshooting text, got %q", got)
	}
	if !strings.Contains(got, doc.FileURL) {
		t.Fatalf("expected file url in guidance, got %q", got)
	}
}
