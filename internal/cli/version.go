package cli

import (
	"fmt"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := uitable.New()
			table.Separator = " "
			table.RightAlign(0)
			table.AddRow("version:", version)
			table.AddRow("goVersion:", runtime.Version())
			table.AddRow("platform:", runtime.GOOS+"/"+runtime.GOARCH)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return err
		},
	}
}
