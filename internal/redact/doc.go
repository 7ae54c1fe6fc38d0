// Package redact removes credentials from text before it is written to
// standard output.
//
// Provider error bodies and transport errors sometimes echo request headers
// or URLs. [Text] replaces the configured API key verbatim and then applies
// regex heuristics for common secret shapes: API key assignments, bearer
// tokens, JWTs, and provider-specific keys (Anthropic, OpenAI, Google, Kimi).
package redact
