package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/rewire/pkg/config"
)

type ConfigArgs struct {
	*RootArgs

	ConfigPath string
	Write      bool
	Force      bool
}

func NewConfigArgs(rootArgs *RootArgs) *ConfigArgs {
	return &ConfigArgs{RootArgs: rootArgs}
}

func (ca *ConfigArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ca.ConfigPath, "config", "", "Path to the rewire configuration file")
	cmd.Flags().BoolVar(&ca.Write, "write", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ca.Force, "force", false, "With --write, back up and replace an existing file")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewConfigCmd(ca *ConfigArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration, or write the default one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, ca)
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, ca *ConfigArgs) error {
	if ca.Write {
		path := ca.ConfigPath
		if path == "" {
			path = config.GetPath()
		}

		return config.WriteDefault(path, ca.Force) //nolint:wrapcheck // Already wrapped.
	}

	cfg, err := loadConfig(ca.ConfigPath, ".")
	if err != nil {
		return err
	}

	b, err := cfg.MarshalYAML()
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	slog.Debug("active configuration", slog.Int("bytes", len(b)))

	return writeOutput(cmd.OutOrStdout(), string(b), "yaml")
}
