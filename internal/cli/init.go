package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/trainyard/internal/paths"
	"github.com/mesh-intelligence/trainyard/pkg/types"
)

const configHeader = "# trainyard shell configuration\n" +
	"# Every key can be overridden with a TRAINYARD_<KEY> environment variable.\n\n"

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and write config.yaml with default values.\nAn existing config.yaml is left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysErr(fmt.Errorf("create config directory: %w", err))
	}

	path := paths.ConfigFile(configDir)
	written, err := writeConfigIfMissing(path)
	if err != nil {
		return sysErr(fmt.Errorf("write config: %w", err))
	}
	if written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := types.DefaultConfig()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
