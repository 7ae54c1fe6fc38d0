// Package config resolves the effective configuration for a single completion.
//
// Precedence (highest to lowest), applied to each field independently:
//  1. Explicit arguments (CLI flags)
//  2. Environment variables (KIMI_API_KEY, DEFAULT_MODEL, MAX_TOKENS, etc.)
//  3. The first KEY=VALUE file found among the candidate paths
//  4. Built-in defaults
//
// The API key has no default: if none of the first three sources supplies
// one, [Resolver.Resolve] returns an error wrapping [ErrMissingAPIKey].
package config
