package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/LongTran04/notisearch/internal/config"
)

var configOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd, configShowCmd)

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing configuration file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if path == "" {
		return errors.New("cannot determine config path")
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logger.Info("wrote config", "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// configFilePath returns the --config path or the default location.
func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}
