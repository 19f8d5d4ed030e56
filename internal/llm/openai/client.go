package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"zephvault-backend/internal/llm"
	"zephvault-backend/internal/shared/telemetry"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrMissingAPIKey
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Chat sends a single non-streaming chat-completion request.
func (c *Client) Chat(ctx context.Context, input llm.ChatInput) (llm.ChatResult, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return llm.ChatResult{}, llm.ErrMissingAPIKey
	}

	reqMessages := make([]chatMessage, 0, len(input.Messages))
	for _, m := range input.Messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	temp := input.Temperature
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    reqMessages,
		MaxTokens:   input.MaxTokens,
		Temperature: &temp,
		Stream:      false,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return llm.ChatResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return llm.ChatResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.ChatResult{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return llm.ChatResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.ChatResult{}, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return llm.ChatResult{}, fmt.Errorf("openai response parse: %w", err)
	}
	if err := categorizeError(resp.StatusCode, parsed); err != nil {
		return llm.ChatResult{}, err
	}
	if len(parsed.Choices) == 0 {
		return llm.ChatResult{}, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return llm.ChatResult{}, fmt.Errorf("openai response empty content")
	}

	result := llm.ChatResult{Text: content}
	if parsed.Usage != nil {
		result.TokensUsed = parsed.Usage.TotalTokens
	}
	logUsage(c.model, parsed)
	return result, nil
}

func categorizeError(status int, parsed chatResponse) error {
	if parsed.Error == nil && status < 400 {
		return nil
	}

	msg := "unknown error"
	errType := ""
	errCode := ""
	if parsed.Error != nil {
		msg = parsed.Error.Message
		errType = parsed.Error.Type
		errCode = parsed.Error.Code
	}

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", llm.ErrAuth, msg)
	case errType == "insufficient_quota" || errCode == "insufficient_quota":
		return fmt.Errorf("%w: %s", llm.ErrQuotaExceeded, msg)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", llm.ErrRateLimited, msg)
	default:
		return fmt.Errorf("openai error: %s (%s)", msg, errType)
	}
}

func logUsage(model string, parsed chatResponse) {
	fields := map[string]any{"model": model}
	if parsed.Usage != nil {
		fields["prompt_tokens"] = parsed.Usage.PromptTokens
		fields["completion_tokens"] = parsed.Usage.CompletionTokens
		fields["total_tokens"] = parsed.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
