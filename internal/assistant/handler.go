package assistant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/llm"
	"zephvault-backend/internal/shared/server/respond"
)

// Handler wires the AI endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches assistant routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai-analyze-document", h.analyze)
	rg.POST("/ai-chat", h.chat)
	rg.POST("/ai-document-chat", h.documentChat)
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Document.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document with id is required", nil)
		return
	}
	c.Set("documentId", req.Document.ID)

	result, err := h.Svc.AnalyzeDocument(c.Request.Context(), req.Document.ID, req.DocumentExcerpt)
	if err != nil {
		h.respondLLMError(c, err)
		return
	}

	respond.OK(c, analyzeResponse{
		Summary: result.Summary,
		Message: "Document analysis completed successfully",
	})
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Message == "" && !req.IsInitial {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	docs := make([]DocumentContext, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, d.toContext())
	}

	result, err := h.Svc.Chat(c.Request.Context(), ChatInput{
		Message:   req.Message,
		Documents: docs,
		History:   toMessages(req.ConversationHistory),
		IsInitial: req.IsInitial,
	})
	if err != nil {
		h.respondLLMError(c, err)
		return
	}

	respond.OK(c, chatResponse{Response: result.Response, TokensUsed: result.TokensUsed})
}

func (h *Handler) documentChat(c *gin.Context) {
	var req documentChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" || req.Document.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message and document with id are required", nil)
		return
	}
	c.Set("documentId", req.Document.ID)

	reply, err := h.Svc.DocumentChat(c.Request.Context(), req.Document.toContext(), req.Message, toMessages(req.ConversationHistory))
	if err != nil {
		h.respondLLMError(c, err)
		return
	}

	respond.OK(c, documentChatResponse{Message: reply, DocumentID: req.Document.ID})
}

// respondLLMError maps provider and lookup failures onto the HTTP surface.
// Missing configuration is the server's fault (500); provider auth, rate
// limit, and quota failures keep their distinct statuses so clients can react.
func (h *Handler) respondLLMError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
	case errors.Is(err, documents.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
	case errors.Is(err, llm.ErrMissingAPIKey):
		respond.Error(c, http.StatusInternalServerError, "llm_not_configured", "OpenAI API key not configured", nil)
	case errors.Is(err, llm.ErrAuth):
		respond.Error(c, http.StatusUnauthorized, "llm_auth_failed", "OpenAI API key is invalid or missing", nil)
	case errors.Is(err, llm.ErrRateLimited):
		respond.Error(c, http.StatusTooManyRequests, "llm_rate_limited", "Rate limit exceeded. Please try again in a moment.", nil)
	case errors.Is(err, llm.ErrQuotaExceeded):
		respond.Error(c, http.StatusPaymentRequired, "llm_quota_exceeded", "OpenAI quota exceeded. Please check your plan and billing details.", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "llm_unavailable", "Failed to get a response from the AI provider. Please try again.", nil)
	}
}
