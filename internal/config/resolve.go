package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
)

// ErrMissingAPIKey is returned when no source supplies an API key.
var ErrMissingAPIKey = errors.New("API key not found")

// Explicit holds values given at the call site. Zero strings and nil
// pointers mean "not given"; a non-nil pointer to zero is an explicit zero.
type Explicit struct {
	Model       string
	Prompt      string
	Temperature *float64
	MaxTokens   *int
	APIKey      string
	Endpoint    string
}

// Resolver merges explicit arguments, environment, an optional file, and
// defaults into an EffectiveConfig.
type Resolver struct {
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Candidates are searched in order; the first existing file is parsed.
	Candidates []string
	Logger     *slog.Logger
}

// NewResolver returns a Resolver over the real environment and the default
// candidate files, with configFile (if set) searched first.
func NewResolver(logger *slog.Logger, configFile string) *Resolver {
	return &Resolver{
		LookupEnv:  os.LookupEnv,
		Candidates: DefaultCandidates(configFile),
		Logger:     logger,
	}
}

// source is one layer of key lookup.
type source struct {
	name   string
	lookup func(string) (string, bool)
}

// Resolve builds the EffectiveConfig for provider. The returned config has
// been validated; on error the partially resolved config is still returned
// so callers can report provider and model.
func (r *Resolver) Resolve(provider Provider, explicit Explicit) (EffectiveConfig, error) {
	logger := r.logger()
	file := r.loadFile(logger)

	lookupEnv := r.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	layers := []source{
		{name: "env", lookup: nonEmpty(lookupEnv)},
		{name: "file", lookup: func(k string) (string, bool) {
			v, ok := file[k]
			return v, ok && v != ""
		}},
	}

	cfg := EffectiveConfig{
		Provider:    provider,
		Model:       DefaultModel(provider),
		Prompt:      explicit.Prompt,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	cfg.APIKey = resolveString(logger, layers, "api_key", explicit.APIKey, apiKeyKeys(provider), "")
	cfg.Model = resolveString(logger, layers, "model", explicit.Model, modelKeys(provider), cfg.Model)
	cfg.Endpoint = resolveString(logger, layers, "endpoint", explicit.Endpoint, endpointKeys(provider), "")

	if explicit.Temperature != nil {
		cfg.Temperature = *explicit.Temperature
		logger.Debug("resolved config field", "field", "temperature", "source", "explicit")
	} else if v, ok := resolveNumber(logger, layers, "temperature", temperatureKeys(provider), parseFloat); ok {
		cfg.Temperature = v
	}

	if explicit.MaxTokens != nil {
		cfg.MaxTokens = *explicit.MaxTokens
		logger.Debug("resolved config field", "field", "max_tokens", "source", "explicit")
	} else if v, ok := resolveNumber(logger, layers, "max_tokens", maxTokensKeys(provider), strconv.Atoi); ok {
		cfg.MaxTokens = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (r *Resolver) loadFile(logger *slog.Logger) map[string]string {
	path := FindFile(r.Candidates)
	if path == "" {
		logger.Debug("no config file found", "candidates", r.Candidates)
		return map[string]string{}
	}
	values, err := ParseFile(path)
	if err != nil {
		logger.Warn("ignoring unreadable config file", "path", path, "error", err)
		return map[string]string{}
	}
	logger.Debug("loaded config file", "path", path, "keys", len(values))
	return values
}

func resolveString(logger *slog.Logger, layers []source, field, explicit string, keys []string, def string) string {
	if explicit != "" {
		logger.Debug("resolved config field", "field", field, "source", "explicit")
		return explicit
	}
	for _, layer := range layers {
		for _, key := range keys {
			if v, ok := layer.lookup(key); ok {
				logger.Debug("resolved config field", "field", field, "source", layer.name, "key", key)
				return v
			}
		}
	}
	return def
}

// resolveNumber walks the layers and returns the first value that parses.
// Unparseable values are logged and skipped.
func resolveNumber[T any](logger *slog.Logger, layers []source, field string, keys []string, parse func(string) (T, error)) (T, bool) {
	for _, layer := range layers {
		for _, key := range keys {
			raw, ok := layer.lookup(key)
			if !ok {
				continue
			}
			v, err := parse(raw)
			if err != nil {
				logger.Warn("ignoring invalid number", "field", field, "source", layer.name, "key", key, "value", raw)
				continue
			}
			logger.Debug("resolved config field", "field", field, "source", layer.name, "key", key)
			return v, true
		}
	}
	var zero T
	return zero, false
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func nonEmpty(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := lookup(k)
		return v, ok && v != ""
	}
}

func apiKeyKeys(p Provider) []string {
	keys := []string{p.envPrefix() + "_API_KEY"}
	if p == Google {
		keys = append(keys, "GEMINI_API_KEY")
	}
	return keys
}

func modelKeys(p Provider) []string {
	return scopedKeys(p, "_MODEL", "DEFAULT_MODEL")
}

func temperatureKeys(p Provider) []string {
	return scopedKeys(p, "_TEMPERATURE", "DEFAULT_TEMPERATURE")
}

func maxTokensKeys(p Provider) []string {
	return scopedKeys(p, "_MAX_TOKENS", "MAX_TOKENS")
}

// scopedKeys returns the provider-scoped key. The unscoped keys
// (DEFAULT_MODEL, DEFAULT_TEMPERATURE, MAX_TOKENS) come from the Kimi
// client's config file and only apply to Kimi.
func scopedKeys(p Provider, suffix, shared string) []string {
	keys := []string{p.envPrefix() + suffix}
	if p == Kimi {
		keys = append(keys, shared)
	}
	return keys
}

func endpointKeys(p Provider) []string {
	return []string{p.envPrefix() + "_API_URL"}
}
