// ABOUTME: version subcommand
// ABOUTME: Prints product, version and manufacturer
package cli

import (
	"fmt"

	"github.com/gtRZync/wav-player/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				version.Product, version.Version, version.Manufacturer)
			return err
		},
	}
}
