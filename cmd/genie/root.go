package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/genie-sim/genie/internal/config"
)

const defaultConfigPath = "config/genie.toml"

var rootCmd = &cobra.Command{
	Use:           "genie",
	Short:         "genie runs fixed-step simulation scenes",
	Long:          `genie loads a scene of actors and actions from YAML and directs it frame by frame on a fixed simulation step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "TOML config file (default $GENIE_CONFIG, then "+defaultConfigPath+")")
}

// loadConfig resolves the config file from the --config flag, then
// GENIE_CONFIG, then the default path. A missing default file means built-in
// defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("GENIE_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = defaultConfigPath
	}
	return config.Load(path)
}
