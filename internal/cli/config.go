package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dshills/promptgate/internal/config"
	"github.com/spf13/cobra"
)

// newConfigCmd prints the effective configuration with the API key masked.
func newConfigCmd(f *completionFlags, fixed *config.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider config.Provider
			switch {
			case fixed != nil:
				provider = *fixed
			case f.provider == "":
				return errRequiredProvider
			default:
				p, err := config.ParseProvider(f.provider)
				if err != nil {
					return err
				}
				provider = p
			}

			logger := newLogger(cmd.ErrOrStderr(), f.logLevel)
			cfg, resolveErr := config.NewResolver(logger, f.configFile).Resolve(provider, buildExplicit(cmd, f))
			if errors.Is(resolveErr, config.ErrEmptyPrompt) {
				resolveErr = nil
			}

			data, err := json.MarshalIndent(cfg.Masked(), "", "  ")
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
				return err
			}
			return resolveErr
		},
	}
}
