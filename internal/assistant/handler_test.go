package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/llm"
	localstore "zephvault-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T, client llm.Client, seed ...documents.Document) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := localstore.New(t.TempDir())
	repo := documents.NewMemoryRepo()
	for _, doc := range seed {
		if err := repo.Create(context.Background(), doc); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := &Service{
		Docs:     &documents.Service{Store: store, Repo: repo},
		Resolver: documents.ContentResolver{Store: store},
		LLM:      client,
	}

	router := gin.New()
	api := router.Group("/api")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeEndpointReturnsSummary(t *testing.T) {
	router := newTestRouter(t, &stubLLM{text: "Analysis text", tokens: 10},
		documents.Document{ID: "doc-1", FileName: "lease.txt", Category: "lease"})

	resp := postJSON(t, router, "/api/ai-analyze-document", map[string]any{
		"document": map[string]any{"id": "doc-1", "file_name": "lease.txt", "category": "lease"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out analyzeResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Summary != "Analysis text" {
		t.Fatalf("unexpected summary %q", out.Summary)
	}
	if out.Message != "Document analysis completed successfully" {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestAnalyzeEndpointDocumentNotFound(t *testing.T) {
	router := newTestRouter(t, &stubLLM{text: "x"})

	resp := postJSON(t, router, "/api/ai-analyze-document", map[string]any{
		"document": map[string]any{"id": "missing"},
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestLLMErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		want     int
		wantCode string
	}{
		{"missing key", llm.ErrMissingAPIKey, http.StatusInternalServerError, "llm_not_configured"},
		{"auth", llm.ErrAuth, http.StatusUnauthorized, "llm_auth_failed"},
		{"rate limited", llm.ErrRateLimited, http.StatusTooManyRequests, "llm_rate_limited"},
		{"quota", llm.ErrQuotaExceeded, http.StatusPaymentRequired, "llm_quota_exceeded"},
		{"provider down", errors.New("boom"), http.StatusBadGateway, "llm_unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, &stubLLM{err: tc.err})

			resp := postJSON(t, router, "/api/ai-chat", map[string]any{"message": "hi"})
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, resp.Code, resp.Body.String())
			}
			if !bytes.Contains(resp.Body.Bytes(), []byte(tc.wantCode)) {
				t.Fatalf("expected code %q in body %s", tc.wantCode, resp.Body.String())
			}
		})
	}
}

func TestUnconfiguredClientNeverDials(t *testing.T) {
	router := newTestRouter(t, llm.UnconfiguredClient{})

	resp := postJSON(t, router, "/api/ai-chat", map[string]any{"message": "hi"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("OpenAI API key not configured")) {
		t.Fatalf("expected configuration message, got %s", resp.Body.String())
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	router := newTestRouter(t, &stubLLM{text: "x"})

	resp := postJSON(t, router, "/api/ai-chat", map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDocumentChatEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubLLM{text: "Reply text"},
		documents.Document{ID: "doc-1", FileName: "deed.txt", Category: "deed", AISummary: "s"})

	resp := postJSON(t, router, "/api/ai-document-chat", map[string]any{
		"message":  "What is this?",
		"document": map[string]any{"id": "doc-1", "file_name": "deed.txt", "category": "deed"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out documentChatResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Message != "Reply text" || out.DocumentID != "doc-1" {
		t.Fatalf("unexpected response %+v", out)
	}
}
