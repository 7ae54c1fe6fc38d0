package providers

import "github.com/dshills/promptgate/internal/config"

// ModelInfo describes a known model. Unknown models are still accepted.
type ModelInfo struct {
	Name          string
	ContextWindow string
	Description   string

	// RecommendedTemperature is zero when the vendor gives no advice.
	RecommendedTemperature float64
}

// ProviderModels groups the known models of one provider.
type ProviderModels struct {
	Provider config.Provider
	Models   []ModelInfo
}

// Catalog lists known models per provider. The first model of each provider
// is its default.
var Catalog = []ProviderModels{
	{
		Provider: config.OpenAI,
		Models: []ModelInfo{
			{Name: "gpt-4o", ContextWindow: "128K", Description: "general purpose"},
			{Name: "gpt-4o-mini", ContextWindow: "128K", Description: "fast, low cost"},
			{Name: "gpt-4.1", ContextWindow: "1M", Description: "long context"},
			{Name: "gpt-4.1-mini", ContextWindow: "1M", Description: "long context, low cost"},
			{Name: "o3-mini", ContextWindow: "200K", Description: "reasoning"},
		},
	},
	{
		Provider: config.Anthropic,
		Models: []ModelInfo{
			{Name: "claude-3-5-sonnet-20241022", ContextWindow: "200K", Description: "general purpose"},
			{Name: "claude-3-5-haiku-20241022", ContextWindow: "200K", Description: "fast, low cost"},
			{Name: "claude-sonnet-4-20250514", ContextWindow: "200K", Description: "general purpose"},
			{Name: "claude-opus-4-20250514", ContextWindow: "200K", Description: "complex tasks"},
		},
	},
	{
		Provider: config.Google,
		Models: []ModelInfo{
			{Name: "gemini-1.5-pro", ContextWindow: "2M", Description: "general purpose"},
			{Name: "gemini-1.5-flash", ContextWindow: "1M", Description: "fast, low cost"},
			{Name: "gemini-2.0-flash", ContextWindow: "1M", Description: "fast"},
			{Name: "gemini-2.5-pro", ContextWindow: "1M", Description: "thinking"},
		},
	},
	{
		Provider: config.Kimi,
		Models: []ModelInfo{
			{Name: "moonshot-v1-8k", ContextWindow: "8K", Description: "general tasks"},
			{Name: "moonshot-v1-32k", ContextWindow: "32K", Description: "medium-length documents"},
			{Name: "moonshot-v1-128k", ContextWindow: "128K", Description: "long document analysis"},
			{Name: "kimi-k2-thinking", ContextWindow: "256K", Description: "deep reasoning with chain of thought", RecommendedTemperature: 1.0},
			{Name: "kimi-k2-instruct", ContextWindow: "128K", Description: "fast responses, tool calling", RecommendedTemperature: 0.6},
		},
	},
}

// ModelsFor returns the known models of provider.
func ModelsFor(provider config.Provider) []ModelInfo {
	for _, pm := range Catalog {
		if pm.Provider == provider {
			return pm.Models
		}
	}
	return nil
}

// Lookup finds model in provider's catalog.
func Lookup(provider config.Provider, model string) (ModelInfo, bool) {
	for _, m := range ModelsFor(provider) {
		if m.Name == model {
			return m, true
		}
	}
	return ModelInfo{}, false
}
