// Promptgate sends a single prompt to OpenAI, Anthropic, Google (Gemini), or
// Kimi (Moonshot) and prints a normalized JSON result.
//
// Usage:
//
//	promptgate --provider openai --prompt "Hello"                 # provider default model
//	promptgate --provider anthropic --model claude-3-5-haiku-20241022 --prompt "Hi"
//	promptgate --provider google --prompt "Hi" --temperature 0.2
//	promptgate models                                            # list known models
//	promptgate config --provider kimi                            # show effective config
//
// API keys come from --api-key, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// GOOGLE_API_KEY (or GEMINI_API_KEY), KIMI_API_KEY, or the same keys in a
// .env file. The exit code is 0 on success and 1 on any failure.
package main
