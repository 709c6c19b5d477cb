package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/rewire/pkg/config"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.Schema()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			return writeOutput(cmd.OutOrStdout(), string(b)+"\n", "json")
		},
	}
}
