package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dshills/promptgate/internal/config"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
)

// Anthropic adapts the Messages API.
type Anthropic struct{}

// NewAnthropic returns the adapter for Anthropic.
func NewAnthropic() *Anthropic { return &Anthropic{} }

func (a *Anthropic) Provider() config.Provider { return config.Anthropic }

func (a *Anthropic) BuildRequest(ctx context.Context, cfg config.EffectiveConfig) (*http.Request, error) {
	body := anthropicRequest{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: cfg.Prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := cfg.Endpoint
	if url == "" {
		url = anthropicAPIURL
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", cfg.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)
	return httpReq, nil
}

func (a *Anthropic) ParseResponse(body []byte) (Completion, error) {
	var result anthropicResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Completion{}, fmt.Errorf("%s response parse error: %w", config.Anthropic, err)
	}
	if result.Content == nil {
		return Completion{}, missing(config.Anthropic, "content")
	}

	var text, thinking strings.Builder
	found := false
	for _, block := range result.Content {
		switch block.Type {
		case "text":
			text.WriteString(block.Text)
			found = true
		case "thinking":
			thinking.WriteString(block.Thinking)
		}
	}
	if !found {
		err := &MissingFieldError{Provider: config.Anthropic, Field: "content[].text"}
		if result.StopReason != "" {
			err.Detail = "stop reason " + result.StopReason
		}
		return Completion{}, err
	}

	out := Completion{Text: text.String(), Reasoning: thinking.String()}
	if u := result.Usage; u != nil {
		out.Usage = Usage{
			PromptTokens:     u.InputTokens,
			CompletionTokens: u.OutputTokens,
		}
		if u.InputTokens != nil && u.OutputTokens != nil {
			out.Usage.TotalTokens = intPtr(*u.InputTokens + *u.OutputTokens)
		}
	}
	return out, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content    []anthropicBlock `json:"content"`
	StopReason string           `json:"stop_reason,omitempty"`
	Usage      *anthropicUsage  `json:"usage,omitempty"`
}

type anthropicBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Thinking string `json:"thinking,omitempty"`
}

type anthropicUsage struct {
	InputTokens  *int `json:"input_tokens,omitempty"`
	OutputTokens *int `json:"output_tokens,omitempty"`
}
