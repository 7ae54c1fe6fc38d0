package cli

import (
	"fmt"

	"github.com/dshills/promptgate/internal/config"
	"github.com/dshills/promptgate/internal/providers"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

// newModelsCmd lists the model catalog. fixed restricts the listing to one
// provider; otherwise --provider filters, and without it every provider is
// shown.
func newModelsCmd(f *completionFlags, fixed *config.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List known models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := config.Providers
			switch {
			case fixed != nil:
				list = []config.Provider{*fixed}
			case f.provider != "":
				p, err := config.ParseProvider(f.provider)
				if err != nil {
					return err
				}
				list = []config.Provider{p}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderModels(list))
			return err
		},
	}
}

func renderModels(list []config.Provider) string {
	table := uitable.New()
	table.Separator = "  "
	table.MaxColWidth = 48
	table.Wrap = true
	table.AddRow("PROVIDER", "MODEL", "CONTEXT", "TEMPERATURE", "DESCRIPTION")
	for _, p := range list {
		for _, m := range providers.ModelsFor(p) {
			name := m.Name
			if name == config.DefaultModel(p) {
				name += " (default)"
			}
			temp := "-"
			if m.RecommendedTemperature > 0 {
				temp = fmt.Sprintf("%.1f", m.RecommendedTemperature)
			}
			table.AddRow(string(p), name, m.ContextWindow, temp, m.Description)
		}
	}
	return table.String()
}
