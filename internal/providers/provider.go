package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dshills/promptgate/internal/config"
)

// ErrUnsupportedProvider is returned when no adapter is compiled in for the
// requested provider.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// Usage is token accounting normalized across providers. Counters the
// provider did not report stay nil and serialize as null.
type Usage struct {
	PromptTokens     *int `json:"prompt_tokens"`
	CompletionTokens *int `json:"completion_tokens"`
	TotalTokens      *int `json:"total_tokens"`
}

// Completion is the parsed content of a successful provider response.
type Completion struct {
	Text      string
	Reasoning string
	Usage     Usage
}

// Adapter maps one provider's request and response schemas.
type Adapter interface {
	Provider() config.Provider
	BuildRequest(ctx context.Context, cfg config.EffectiveConfig) (*http.Request, error)
	ParseResponse(body []byte) (Completion, error)
}

// New returns the adapter for provider.
func New(provider config.Provider) (Adapter, error) {
	switch provider {
	case config.OpenAI:
		return NewOpenAI(), nil
	case config.Kimi:
		return NewKimi(), nil
	case config.Anthropic:
		return NewAnthropic(), nil
	case config.Google:
		return NewGemini(), nil
	default:
		return nil, fmt.Errorf("%w: %q; use one of openai, anthropic, google, kimi", ErrUnsupportedProvider, provider)
	}
}

func intPtr(v int) *int { return &v }
