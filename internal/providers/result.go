package providers

import "github.com/dshills/promptgate/internal/config"

// Result is the JSON document printed for every invocation. A successful
// result carries Response and never Error; a failed one carries Error and
// never Response.
type Result struct {
	Success   bool    `json:"success"`
	Provider  string  `json:"provider,omitempty"`
	Model     string  `json:"model,omitempty"`
	Response  *string `json:"response,omitempty"`
	Reasoning *string `json:"reasoning,omitempty"`
	Usage     *Usage  `json:"usage,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Succeeded builds the result for a parsed completion. Reasoning is only
// included when the provider returned some.
func Succeeded(provider config.Provider, model string, c Completion) Result {
	text := c.Text
	r := Result{
		Success:  true,
		Provider: string(provider),
		Model:    model,
		Response: &text,
		Usage:    &c.Usage,
	}
	if c.Reasoning != "" {
		reasoning := c.Reasoning
		r.Reasoning = &reasoning
	}
	return r
}

// Failed builds the result for any error. provider and model may be empty
// when the failure happened before they were known.
func Failed(provider config.Provider, model string, err error) Result {
	return Result{
		Success:  false,
		Provider: string(provider),
		Model:    model,
		Error:    err.Error(),
	}
}
