package assistant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/llm"
	"zephvault-backend/internal/shared/metrics"
	localstore "zephvault-backend/internal/shared/storage/object/local"
)

type stubLLM struct {
	lastInput llm.ChatInput
	calls     int
	text      string
	tokens    int
	err       error
}

func (s *stubLLM) Chat(ctx context.Context, input llm.ChatInput) (llm.ChatResult, error) {
	s.calls++
	s.lastInput = input
	if s.err != nil {
		return llm.ChatResult{}, s.err
	}
	return llm.ChatResult{Text: s.text, TokensUsed: s.tokens}, nil
}

func newTestService(t *testing.T, client llm.Client) (*Service, *documents.MemoryRepo) {
	t.Helper()
	store := localstore.New(t.TempDir())
	repo := documents.NewMemoryRepo()
	docSvc := &documents.Service{Store: store, Repo: repo}
	return &Service{
		Docs:     docSvc,
		Resolver: documents.ContentResolver{Store: store},
		LLM:      client,
	}, repo
}

func seedDocument(t *testing.T, repo *documents.MemoryRepo, doc documents.Document) {
	t.Helper()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
}

func TestAnalyzeDocumentCachesSummary(t *testing.T) {
	client := &stubLLM{text: "Detailed analysis of the lease.", tokens: 321}
	svc, repo := newTestService(t, client)
	seedDocument(t, repo, documents.Document{
		ID:       "doc-1",
		FileName: "lease.pdf",
		Category: "lease",
		FileURL:  "/storage/v1/object/public/documents/lease/lease.pdf",
	})

	result, err := svc.AnalyzeDocument(context.Background(), "doc-1", "Tenant: John Doe")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Summary != "Detailed analysis of the lease." {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if result.TokensUsed != 321 {
		t.Fatalf("unexpected token count %d", result.TokensUsed)
	}

	stored, _ := repo.GetByID(context.Background(), "doc-1")
	if stored.AISummary != result.Summary {
		t.Fatalf("summary not cached, got %q", stored.AISummary)
	}

	if client.lastInput.MaxTokens != 2000 {
		t.Fatalf("expected analysis max tokens 2000, got %d", client.lastInput.MaxTokens)
	}
	if len(client.lastInput.Messages) != 2 {
		t.Fatalf("expected system+user, got %d messages", len(client.lastInput.Messages))
	}
	userTurn := client.lastInput.Messages[1].Content
	if !strings.Contains(userTurn, "Document Excerpt (User Provided):\nTenant: John Doe") {
		t.Fatalf("excerpt missing from user turn:\n%s", userTurn)
	}
	if !strings.Contains(userTurn, "PDF file content requires specialized extraction") {
		t.Fatalf("expected PDF placeholder in context:\n%s", userTurn)
	}
}

func TestAnalyzeDocumentNotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{text: "x"})

	_, err := svc.AnalyzeDocument(context.Background(), "missing", "")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeDocumentProviderErrorSkipsWriteback(t *testing.T) {
	client := &stubLLM{err: llm.ErrRateLimited}
	svc, repo := newTestService(t, client)
	seedDocument(t, repo, documents.Document{ID: "doc-1", FileName: "lease.txt", Category: "lease"})

	_, err := svc.AnalyzeDocument(context.Background(), "doc-1", "")
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), "doc-1")
	if stored.AISummary != "" {
		t.Fatalf("summary should not be written on provider failure, got %q", stored.AISummary)
	}
}

func TestChatInitialSynthesizesSummaryTurn(t *testing.T) {
	client := &stubLLM{text: "Here is an overview."}
	svc, _ := newTestService(t, client)

	result, err := svc.Chat(context.Background(), ChatInput{
		IsInitial: true,
		Documents: []DocumentContext{
			{ID: "a", FileName: "lease.pdf", Category: "lease", AISummary: "summary A"},
			{ID: "b", FileName: "deed.txt", Category: "deed"},
		},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if result.Response != "Here is an overview." {
		t.Fatalf("unexpected response %q", result.Response)
	}

	messages := client.lastInput.Messages
	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser {
		t.Fatalf("expected synthesized user turn, got role %q", last.Role)
	}
	if !strings.Contains(last.Content, "summary of the 2 document(s)") {
		t.Fatalf("unexpected synthesized turn: %q", last.Content)
	}

	system := messages[0].Content
	if !strings.Contains(system, "Previous Summary: summary A") {
		t.Fatalf("expected document summary in system prompt:\n%s", system)
	}
	if !strings.Contains(system, "Document: deed.txt") {
		t.Fatalf("expected second document in system prompt:\n%s", system)
	}
	if client.lastInput.MaxTokens != 1000 {
		t.Fatalf("expected chat max tokens 1000, got %d", client.lastInput.MaxTokens)
	}
}

func TestChatCapsHistory(t *testing.T) {
	client := &stubLLM{text: "ok"}
	svc, _ := newTestService(t, client)

	var history []llm.Message
	for i := 0; i < 25; i++ {
		history = append(history, llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}

	if _, err := svc.Chat(context.Background(), ChatInput{Message: "latest", History: history}); err != nil {
		t.Fatalf("chat: %v", err)
	}

	// system + capped history + current message
	messages := client.lastInput.Messages
	if len(messages) != 1+historyLimit+1 {
		t.Fatalf("expected %d messages, got %d", 1+historyLimit+1, len(messages))
	}
	if messages[1].Content != "turn 15" {
		t.Fatalf("expected oldest kept turn to be 15, got %q", messages[1].Content)
	}
}

func TestChatWithoutDocumentsUsesFallbackContext(t *testing.T) {
	client := &stubLLM{text: "ok"}
	svc, _ := newTestService(t, client)

	if _, err := svc.Chat(context.Background(), ChatInput{Message: "hello"}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(client.lastInput.Messages[0].Content, "No documents provided in this session.") {
		t.Fatal("expected empty-session fallback in system prompt")
	}
}

func TestChatEmptyChoiceFallsBack(t *testing.T) {
	svc, _ := newTestService(t, &stubLLM{text: ""})

	result, err := svc.Chat(context.Background(), ChatInput{Message: "hello"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if result.Response != emptyChatFallback {
		t.Fatalf("expected fallback response, got %q", result.Response)
	}
}

func TestDocumentChatUsesStoredSummary(t *testing.T) {
	client := &stubLLM{text: "The lease expires in June."}
	svc, repo := newTestService(t, client)
	seedDocument(t, repo, documents.Document{
		ID:        "doc-1",
		FileName:  "lease.pdf",
		Category:  "lease",
		AISummary: "Parties: John Doe and Jane Smith.",
	})

	reply, err := svc.DocumentChat(context.Background(), DocumentContext{
		ID:       "doc-1",
		FileName: "lease.pdf",
		Category: "lease",
	}, "When does it expire?", nil)
	if err != nil {
		t.Fatalf("document chat: %v", err)
	}
	if reply != "The lease expires in June." {
		t.Fatalf("unexpected reply %q", reply)
	}

	system := client.lastInput.Messages[0].Content
	if !strings.Contains(system, "Document Summary: Parties: John Doe and Jane Smith.") {
		t.Fatalf("expected stored summary in system prompt:\n%s", system)
	}
	if client.lastInput.MaxTokens != 1000 {
		t.Fatalf("expected document chat max tokens 1000, got %d", client.lastInput.MaxTokens)
	}
}

func TestDocumentChatFallsBackToRequestMetadata(t *testing.T) {
	client := &stubLLM{text: "ok"}
	svc, _ := newTestService(t, client)

	_, err := svc.DocumentChat(context.Background(), DocumentContext{
		ID:       "missing",
		FileName: "deed.txt",
		Category: "deed",
	}, "What is this?", nil)
	if err != nil {
		t.Fatalf("document chat: %v", err)
	}

	system := client.lastInput.Messages[0].Content
	if !strings.Contains(system, "Document: deed.txt (Category: deed)") {
		t.Fatalf("expected metadata fallback in system prompt:\n%s", system)
	}
}

func TestAnalyzeDocumentRepeatReplacesSummary(t *testing.T) {
	client := &stubLLM{text: "Run summary."}
	svc, repo := newTestService(t, client)
	seedDocument(t, repo, documents.Document{
		ID:       "doc-1",
		FileName: "lease.txt",
		Category: "lease",
		FileURL:  "/storage/v1/object/public/documents/lease/lease.txt",
	})

	first, err := svc.AnalyzeDocument(context.Background(), "doc-1", "")
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := svc.AnalyzeDocument(context.Background(), "doc-1", "")
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if first.Summary != second.Summary {
		t.Fatalf("deterministic client produced %q then %q", first.Summary, second.Summary)
	}

	stored, _ := repo.GetByID(context.Background(), "doc-1")
	if stored.AISummary != "Run summary." {
		t.Fatalf("expected cached summary %q, got %q", "Run summary.", stored.AISummary)
	}

	// A later run overwrites the cache rather than accumulating.
	client.text = "Revised summary."
	if _, err := svc.AnalyzeDocument(context.Background(), "doc-1", ""); err != nil {
		t.Fatalf("third analyze: %v", err)
	}
	stored, _ = repo.GetByID(context.Background(), "doc-1")
	if stored.AISummary != "Revised summary." {
		t.Fatalf("expected cached summary replaced, got %q", stored.AISummary)
	}
}

func counterValue(t *testing.T, rendered, name string) uint64 {
	t.Helper()
	for _, line := range strings.Split(rendered, "\n") {
		if strings.HasPrefix(line, name+" ") {
			v, err := strconv.ParseUint(strings.TrimPrefix(line, name+" "), 10, 64)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			return v
		}
	}
	t.Fatalf("counter %s not found in:\n%s", name, rendered)
	return 0
}

func TestAnalyzeDocumentRecordsMetrics(t *testing.T) {
	client := &stubLLM{text: "summary"}
	svc, repo := newTestService(t, client)
	seedDocument(t, repo, documents.Document{
		ID:       "doc-1",
		FileName: "lease.txt",
		Category: "lease",
		FileURL:  "/storage/v1/object/public/documents/lease/lease.txt",
	})

	before := metrics.Render()
	if _, err := svc.AnalyzeDocument(context.Background(), "doc-1", ""); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	after := metrics.Render()

	started := counterValue(t, after, "assistant_requests_started_total") - counterValue(t, before, "assistant_requests_started_total")
	completed := counterValue(t, after, "assistant_requests_completed_total") - counterValue(t, before, "assistant_requests_completed_total")
	if started != 1 || completed != 1 {
		t.Fatalf("expected started/completed to advance by 1, got %d/%d", started, completed)
	}

	client.err = llm.ErrRateLimited
	before = after
	if _, err := svc.AnalyzeDocument(context.Background(), "doc-1", ""); err == nil {
		t.Fatalf("expected provider error")
	}
	after = metrics.Render()

	failed := counterValue(t, after, "assistant_requests_failed_total") - counterValue(t, before, "assistant_requests_failed_total")
	if failed != 1 {
		t.Fatalf("expected failed to advance by 1, got %d", failed)
	}
}
