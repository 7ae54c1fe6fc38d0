// Package providers performs single-turn completions against OpenAI,
// Anthropic, Google (Gemini), and Kimi (Moonshot).
//
// Each provider is an [Adapter] that builds one HTTP request from a
// [config.EffectiveConfig] and parses the provider's own response schema
// into a [Completion]. [Client.Complete] sends exactly one request with a
// bounded timeout and folds every outcome into a [Result], the JSON shape
// written to standard output. There is no retry.
//
// HTTP clients are injected via a field so that tests can redirect calls to
// local httptest servers without making live API requests.
package providers
