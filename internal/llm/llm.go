package llm

import (
	"context"
	"errors"
)

// Message roles accepted by chat-completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged chat turn.
type Message struct {
	Role    string
	Content string
}

// ChatInput captures one non-streaming chat-completion request.
type ChatInput struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// ChatResult is the first choice's text plus token accounting.
type ChatResult struct {
	Text       string
	TokensUsed int
}

// Client abstracts chat-completion providers.
type Client interface {
	Chat(ctx context.Context, input ChatInput) (ChatResult, error)
}

// Categorized provider failures. Callers map these to distinct HTTP statuses;
// no retry is performed at this layer.
var (
	ErrMissingAPIKey = errors.New("llm api key not configured")
	ErrAuth          = errors.New("llm authentication failed")
	ErrRateLimited   = errors.New("llm rate limit exceeded")
	ErrQuotaExceeded = errors.New("llm quota exceeded")
)

// UnconfiguredClient stands in when no API key is set. It fails every call
// with ErrMissingAPIKey without dialing the provider.
type UnconfiguredClient struct{}

// Chat returns ErrMissingAPIKey.
func (UnconfiguredClient) Chat(ctx context.Context, input ChatInput) (ChatResult, error) {
	_ = ctx
	_ = input
	return ChatResult{}, ErrMissingAPIKey
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Chat returns ErrNotImplemented.
func (PlaceholderClient) Chat(ctx context.Context, input ChatInput) (ChatResult, error) {
	_ = ctx
	_ = input
	return ChatResult{}, ErrNotImplemented
}
