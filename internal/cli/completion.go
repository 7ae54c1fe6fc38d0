package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dshills/promptgate/internal/config"
	"github.com/dshills/promptgate/internal/output"
	"github.com/dshills/promptgate/internal/providers"
	"github.com/spf13/cobra"
)

var (
	errRequiredProvider = errors.New(`required flag(s) "provider" not set`)
	errRequiredPrompt   = fmt.Errorf(`%w: required flag(s) "prompt" not set`, config.ErrEmptyPrompt)
)

// completionFlags holds the flag values of one root command.
type completionFlags struct {
	provider    string
	model       string
	prompt      string
	temperature float64
	maxTokens   int
	apiKey      string
	endpoint    string
	configFile  string
	format      string
	logLevel    string
}

var (
	gatewayFlags completionFlags
	kimiFlags    completionFlags
)

func addCompletionFlags(cmd *cobra.Command, f *completionFlags, withProvider bool) {
	pf := cmd.PersistentFlags()
	if withProvider {
		pf.StringVar(&f.provider, "provider", "", "LLM provider (openai, anthropic, google, kimi)")
	}
	pf.StringVar(&f.model, "model", "", "Model name (default: from config file or the provider default)")
	pf.Float64Var(&f.temperature, "temperature", config.DefaultTemperature, "Response randomness, 0.0-2.0")
	pf.IntVar(&f.maxTokens, "max-tokens", config.DefaultMaxTokens, "Maximum tokens to generate")
	pf.StringVar(&f.apiKey, "api-key", "", "API key (overrides environment and config file)")
	pf.StringVar(&f.endpoint, "endpoint", "", "Override the provider API URL")
	pf.StringVar(&f.configFile, "config", "", "KEY=VALUE file searched before the default locations")
	pf.StringVar(&f.logLevel, "log-level", "warn", "Diagnostic log level on stderr (debug, info, warn, error)")

	cmd.Flags().StringVar(&f.prompt, "prompt", "", "Prompt to send to the model (required)")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format ("+strings.Join(output.Formats, ", ")+")")
}

// buildExplicit collects the flags the user actually set. Numeric flags use
// Changed so that an explicit zero still takes precedence.
func buildExplicit(cmd *cobra.Command, f *completionFlags) config.Explicit {
	e := config.Explicit{
		Model:    f.model,
		Prompt:   f.prompt,
		APIKey:   f.apiKey,
		Endpoint: f.endpoint,
	}
	if cmd.Flags().Changed("temperature") {
		t := f.temperature
		e.Temperature = &t
	}
	if cmd.Flags().Changed("max-tokens") {
		n := f.maxTokens
		e.MaxTokens = &n
	}
	return e
}

func runCompletion(cmd *cobra.Command, f *completionFlags, provider config.Provider) error {
	writer, err := output.GetWriter(f.format)
	if err != nil {
		return err
	}
	if f.prompt == "" {
		return writeFailure(cmd, f, provider, errRequiredPrompt)
	}
	logger := newLogger(cmd.ErrOrStderr(), f.logLevel)

	resolver := config.NewResolver(logger, f.configFile)
	cfg, err := resolver.Resolve(provider, buildExplicit(cmd, f))

	var result providers.Result
	if err != nil {
		result = providers.Failed(provider, cfg.Model, err)
	} else {
		result = providers.NewClient(logger).Complete(cmd.Context(), cfg)
	}

	if err := writer.Write(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if !result.Success {
		exitCode = ExitFailure
	}
	return nil
}

// writeFailure reports an error that happened before configuration could be
// resolved, still in the output format the caller asked for.
func writeFailure(cmd *cobra.Command, f *completionFlags, provider config.Provider, cause error) error {
	writer, err := output.GetWriter(f.format)
	if err != nil {
		return err
	}
	exitCode = ExitFailure
	return writer.Write(cmd.OutOrStdout(), providers.Failed(provider, f.model, cause))
}

// newLogger returns a text logger on w. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
