package assistant

import "zephvault-backend/internal/llm"

type documentRef struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	Category  string `json:"category"`
	AISummary string `json:"ai_summary"`
}

func (d documentRef) toContext() DocumentContext {
	return DocumentContext{
		ID:        d.ID,
		FileName:  d.FileName,
		Category:  d.Category,
		AISummary: d.AISummary,
	}
}

type historyTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// toMessages keeps only user and assistant turns; callers cannot inject
// system messages through history.
func toMessages(history []historyTurn) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, turn := range history {
		if turn.Role != llm.RoleUser && turn.Role != llm.RoleAssistant {
			continue
		}
		out = append(out, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return out
}

type analyzeRequest struct {
	Document        documentRef `json:"document"`
	DocumentExcerpt string      `json:"documentExcerpt"`
}

type analyzeResponse struct {
	Summary string `json:"summary"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message             string        `json:"message"`
	Documents           []documentRef `json:"documents"`
	ConversationHistory []historyTurn `json:"conversationHistory"`
	IsInitial           bool          `json:"isInitial"`
}

type chatResponse struct {
	Response   string `json:"response"`
	TokensUsed int    `json:"tokensUsed"`
}

type documentChatRequest struct {
	Message             string        `json:"message"`
	Document            documentRef   `json:"document"`
	ConversationHistory []historyTurn `json:"conversationHistory"`
}

type documentChatResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
}
