package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys after common key patterns
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret|x-api-key|x-goog-api-key)\s*[:=]\s*["']?([A-Za-z0-9/+=_.-]{16,})["']?`),
	// Query-string keys (Gemini's ?key=)
	regexp.MustCompile(`([?&]key=)[A-Za-z0-9_-]{16,}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{16,}`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Anthropic API keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	// OpenAI and Moonshot API keys
	regexp.MustCompile(`sk-(proj-)?[A-Za-z0-9]{20,}`),
	// Google API keys
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// Key replaces every occurrence of key in text. Keys shorter than four
// characters are left alone; replacing them would mangle ordinary words.
func Key(text, key string) string {
	if len(key) < 4 {
		return text
	}
	return strings.ReplaceAll(text, key, placeholder)
}

// Text removes key and any recognizable secret from text.
func Text(text, key string) string {
	return Secrets(Key(text, key))
}
