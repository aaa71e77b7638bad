package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	asyncspec "github.com/erraggy/asyncspec"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), asyncspec.BuildInfo())
			return err
		},
	}
}
