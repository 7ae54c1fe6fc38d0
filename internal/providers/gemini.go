package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dshills/promptgate/internal/config"
)

const geminiAPIURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini adapts Google's generateContent API. An endpoint override is
// treated as the models base URL unless it already names the method.
type Gemini struct{}

// NewGemini returns the adapter for Google.
func NewGemini() *Gemini { return &Gemini{} }

func (g *Gemini) Provider() config.Provider { return config.Google }

func (g *Gemini) BuildRequest(ctx context.Context, cfg config.EffectiveConfig) (*http.Request, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: cfg.Prompt}},
			},
		},
		GenerationConfig: &geminiGenConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL(cfg), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", cfg.APIKey)
	return httpReq, nil
}

func geminiURL(cfg config.EffectiveConfig) string {
	base := cfg.Endpoint
	if base == "" {
		base = geminiAPIURL
	}
	if strings.Contains(base, ":generateContent") {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(cfg.Model) + ":generateContent"
}

func (g *Gemini) ParseResponse(body []byte) (Completion, error) {
	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Completion{}, fmt.Errorf("%s response parse error: %w", config.Google, err)
	}

	if len(result.Candidates) == 0 {
		err := &MissingFieldError{Provider: config.Google, Field: "candidates"}
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			err.Detail = "prompt blocked: " + result.PromptFeedback.BlockReason
		}
		return Completion{}, err
	}
	cand := result.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		err := &MissingFieldError{Provider: config.Google, Field: "candidates[0].content.parts"}
		if cand.FinishReason != "" {
			err.Detail = "finish reason " + cand.FinishReason
		}
		return Completion{}, err
	}

	var text, thoughts strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Thought {
			thoughts.WriteString(part.Text)
			continue
		}
		text.WriteString(part.Text)
	}

	out := Completion{Text: text.String(), Reasoning: thoughts.String()}
	if u := result.UsageMetadata; u != nil {
		out.Usage = Usage{
			PromptTokens:     u.PromptTokenCount,
			CompletionTokens: u.CandidatesTokenCount,
			TotalTokens:      u.TotalTokenCount,
		}
	}
	return out, nil
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate     `json:"candidates"`
	PromptFeedback *geminiPromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *geminiUsage          `json:"usageMetadata,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
}

type geminiPromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type geminiUsage struct {
	PromptTokenCount     *int `json:"promptTokenCount,omitempty"`
	CandidatesTokenCount *int `json:"candidatesTokenCount,omitempty"`
	TotalTokenCount      *int `json:"totalTokenCount,omitempty"`
}
