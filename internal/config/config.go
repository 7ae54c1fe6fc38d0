package config

import (
	"errors"
	"fmt"
	"strings"
)

// Provider identifies an upstream LLM API.
type Provider string

const (
	OpenAI    Provider = "openai"
	Anthropic Provider = "anthropic"
	Google    Provider = "google"
	Kimi      Provider = "kimi"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{OpenAI, Anthropic, Google, Kimi}

var (
	// ErrUnknownProvider is returned by ParseProvider for unsupported names.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrEmptyPrompt is returned by Validate when there is nothing to send.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
)

// ParseProvider converts user input into a Provider. "gemini" is accepted as
// an alias for google.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return OpenAI, nil
	case "anthropic", "claude":
		return Anthropic, nil
	case "google", "gemini":
		return Google, nil
	case "kimi", "moonshot":
		return Kimi, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownProvider, s, supportedList())
	}
}

func supportedList() string {
	names := make([]string, len(Providers))
	for i, p := range Providers {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// envPrefix is the upper-case prefix used for provider-scoped keys.
func (p Provider) envPrefix() string {
	return strings.ToUpper(string(p))
}

// Built-in defaults.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

var defaultModels = map[Provider]string{
	OpenAI:    "gpt-4o",
	Anthropic: "claude-3-5-sonnet-20241022",
	Google:    "gemini-1.5-pro",
	Kimi:      "moonshot-v1-8k",
}

// DefaultModel returns the model used when no source names one.
func DefaultModel(p Provider) string {
	return defaultModels[p]
}

// EffectiveConfig is the fully resolved input to one completion call.
// It is built once per invocation and passed by value.
type EffectiveConfig struct {
	Provider    Provider `json:"provider"`
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt,omitempty"`
	Temperature float64  `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
	APIKey      string   `json:"api_key"`
	Endpoint    string   `json:"endpoint,omitempty"`
}

// Validate checks the invariants that must hold before a request is sent.
func (c EffectiveConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, strings.Join(apiKeyKeys(c.Provider), " or "))
	}
	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf("temperature %v out of range [%v, %v]", c.Temperature, MinTemperature, MaxTemperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if strings.TrimSpace(c.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// Masked returns a copy safe to print: the API key is reduced to its last
// four characters.
func (c EffectiveConfig) Masked() EffectiveConfig {
	switch {
	case c.APIKey == "":
	case len(c.APIKey) <= 8:
		c.APIKey = "****"
	default:
		c.APIKey = "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return c
}
