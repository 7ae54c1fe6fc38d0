package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dshills/promptgate/internal/config"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"
	defaultKimiURL   = "https://api.moonshot.cn/v1/chat/completions"
)

// ChatCompletions adapts OpenAI-style /chat/completions APIs. OpenAI and
// Kimi share the schema; Kimi's thinking models add reasoning_content to
// the message, which is surfaced as Completion.Reasoning.
type ChatCompletions struct {
	provider   config.Provider
	defaultURL string
}

// NewOpenAI returns the adapter for OpenAI.
func NewOpenAI() *ChatCompletions {
	return &ChatCompletions{provider: config.OpenAI, defaultURL: defaultOpenAIURL}
}

// NewKimi returns the adapter for Kimi (Moonshot).
func NewKimi() *ChatCompletions {
	return &ChatCompletions{provider: config.Kimi, defaultURL: defaultKimiURL}
}

func (c *ChatCompletions) Provider() config.Provider { return c.provider }

func (c *ChatCompletions) BuildRequest(ctx context.Context, cfg config.EffectiveConfig) (*http.Request, error) {
	body := chatRequest{
		Model: cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: cfg.Prompt},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := cfg.Endpoint
	if url == "" {
		url = c.defaultURL
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	return httpReq, nil
}

func (c *ChatCompletions) ParseResponse(body []byte) (Completion, error) {
	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Completion{}, fmt.Errorf("%s response parse error: %w", c.provider, err)
	}

	if len(result.Choices) == 0 {
		return Completion{}, missing(c.provider, "choices")
	}
	msg := result.Choices[0].Message
	if msg == nil {
		return Completion{}, missing(c.provider, "choices[0].message")
	}
	if msg.Content == nil {
		return Completion{}, missing(c.provider, "choices[0].message.content")
	}

	out := Completion{Text: *msg.Content}
	if msg.ReasoningContent != nil {
		out.Reasoning = *msg.ReasoningContent
	}
	if result.Usage != nil {
		out.Usage = Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		}
	}
	return out, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage"`
}

type chatChoice struct {
	Message *chatResponseMessage `json:"message"`
}

type chatResponseMessage struct {
	Role             string  `json:"role,omitempty"`
	Content          *string `json:"content"`
	ReasoningContent *string `json:"reasoning_content,omitempty"`
}

type chatUsage struct {
	PromptTokens     *int `json:"prompt_tokens,omitempty"`
	CompletionTokens *int `json:"completion_tokens,omitempty"`
	TotalTokens      *int `json:"total_tokens,omitempty"`
}
