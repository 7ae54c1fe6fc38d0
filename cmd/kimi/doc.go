// Kimi is a dedicated client for the Kimi (Moonshot AI) chat completions API.
//
// Usage:
//
//	kimi --prompt "Introduce yourself"
//	kimi --model moonshot-v1-128k --prompt "Analyze this long document..."
//	kimi --model kimi-k2-thinking --prompt "Hard problem" --temperature 1.0
//
// Configuration is read from flags, then the environment, then the first of
// <install dir>/../config/.env, ./config/.env, and ./.env. Recognized keys:
// KIMI_API_KEY, KIMI_API_URL, DEFAULT_MODEL, DEFAULT_TEMPERATURE, MAX_TOKENS.
package main
