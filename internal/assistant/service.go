package assistant

import (
	"context"
	"time"

	"zephvault-backend/internal/documents"
	"zephvault-backend/internal/llm"
	"zephvault-backend/internal/shared/metrics"
	"zephvault-backend/internal/shared/telemetry"
)

// Fallback texts returned when the provider produces an empty choice.
const (
	emptyAnalysisFallback = "I apologize, but I was unable to generate an analysis for this document. Please try again."
	emptyChatFallback     = "I apologize, but I was unable to generate a response. Please try again."
)

// Generation parameters per operation. Analysis runs cool and long; workspace
// chat runs warm; document chat sits in between.
const (
	analyzeMaxTokens   = 2000
	analyzeTemperature = 0.2

	chatMaxTokens   = 1000
	chatTemperature = 0.7

	documentChatMaxTokens   = 1000
	documentChatTemperature = 0.3
)

// DocumentContext is the per-document metadata callers pass along with chat
// requests.
type DocumentContext struct {
	ID        string
	FileName  string
	Category  string
	AISummary string
}

// Service orchestrates LLM calls around the document store.
type Service struct {
	Docs     *documents.Service
	Resolver documents.ContentResolver
	LLM      llm.Client
}

// AnalysisResult carries the generated summary and token accounting.
type AnalysisResult struct {
	Summary    string
	TokensUsed int
}

// AnalyzeDocument runs the comprehensive analysis for a stored document and
// caches the result. The write-back is best effort: a failed update is logged
// and the summary is still returned.
func (s *Service) AnalyzeDocument(ctx context.Context, documentID, excerpt string) (AnalysisResult, error) {
	start := time.Now()
	metrics.IncAssistantStarted()

	doc, err := s.Docs.Get(ctx, documentID)
	if err != nil {
		metrics.IncAssistantFailed()
		return AnalysisResult{}, err
	}

	documentContext := s.Resolver.AnalysisContext(ctx, doc, excerpt)

	result, err := s.LLM.Chat(ctx, llm.ChatInput{
		Messages:    analyzeMessages(documentContext),
		MaxTokens:   analyzeMaxTokens,
		Temperature: analyzeTemperature,
	})
	if err != nil {
		metrics.IncAssistantFailed()
		metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))
		return AnalysisResult{}, err
	}

	summary := result.Text
	if summary == "" {
		summary = emptyAnalysisFallback
	}

	if err := s.Docs.UpdateSummary(ctx, documentID, summary); err != nil {
		telemetry.Warn("assistant.analyze.writeback", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	}

	telemetry.Info("assistant.analyze", map[string]any{
		"document_id":    documentID,
		"file_name":      doc.FileName,
		"category":       doc.Category,
		"summary_length": len(summary),
		"tokens_used":    result.TokensUsed,
	})

	metrics.IncAssistantCompleted()
	metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))

	return AnalysisResult{Summary: summary, TokensUsed: result.TokensUsed}, nil
}

// ChatInput is a workspace-chat request across a set of documents.
type ChatInput struct {
	Message   string
	Documents []DocumentContext
	History   []llm.Message
	IsInitial bool
}

// ChatResult is the assistant's reply plus token accounting.
type ChatResult struct {
	Response   string
	TokensUsed int
}

// Chat answers a workspace-level question using cached summaries and metadata
// only. A fresh session with documents gets a synthesized opening turn asking
// for an overall summary.
func (s *Service) Chat(ctx context.Context, in ChatInput) (ChatResult, error) {
	start := time.Now()
	metrics.IncAssistantStarted()

	messages := make([]llm.Message, 0, len(in.History)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: chatSystemPrompt(documentsContext(in.Documents)),
	})
	messages = append(messages, capHistory(in.History)...)

	if in.IsInitial && len(in.Documents) > 0 {
		messages = append(messages, llm.Message{
			Role:    llm.RoleUser,
			Content: initialSummaryRequest(len(in.Documents)),
		})
	} else {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: in.Message})
	}

	result, err := s.LLM.Chat(ctx, llm.ChatInput{
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		metrics.IncAssistantFailed()
		metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))
		return ChatResult{}, err
	}

	response := result.Text
	if response == "" {
		response = emptyChatFallback
	}

	telemetry.Info("assistant.chat", map[string]any{
		"documents_count": len(in.Documents),
		"is_initial":      in.IsInitial,
		"response_length": len(response),
		"tokens_used":     result.TokensUsed,
	})

	metrics.IncAssistantCompleted()
	metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))

	return ChatResult{Response: response, TokensUsed: result.TokensUsed}, nil
}

// DocumentChat answers a question scoped to a single document. The stored
// record wins over the caller-supplied metadata; if the lookup fails the
// request metadata is used as a degraded fallback.
func (s *Service) DocumentChat(ctx context.Context, ref DocumentContext, message string, history []llm.Message) (string, error) {
	start := time.Now()
	metrics.IncAssistantStarted()

	var documentContent string
	doc, err := s.Docs.Get(ctx, ref.ID)
	if err == nil {
		documentContent = s.Resolver.ChatContext(ctx, doc)
	} else {
		telemetry.Warn("assistant.document_chat.lookup", map[string]any{
			"document_id": ref.ID,
			"error":       err.Error(),
		})
		fallback := documents.Document{
			ID:        ref.ID,
			FileName:  ref.FileName,
			Category:  ref.Category,
			AISummary: ref.AISummary,
		}
		documentContent = s.Resolver.ChatContext(ctx, fallback)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: documentChatSystemPrompt(ref.FileName, ref.Category, documentContent),
	})
	messages = append(messages, capHistory(history)...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	result, err := s.LLM.Chat(ctx, llm.ChatInput{
		Messages:    messages,
		MaxTokens:   documentChatMaxTokens,
		Temperature: documentChatTemperature,
	})
	if err != nil {
		metrics.IncAssistantFailed()
		metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))
		return "", err
	}

	metrics.IncAssistantCompleted()
	metrics.ObserveAssistantDurationMs(metrics.SinceMillis(start))

	if result.Text == "" {
		return emptyChatFallback, nil
	}
	return result.Text, nil
}
