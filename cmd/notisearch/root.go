// Package main provides the CLI entrypoint for notisearch.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LongTran04/notisearch/internal/adapter/input"
	"github.com/LongTran04/notisearch/internal/config"
	"github.com/LongTran04/notisearch/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		feed       string
		configPath string
	}
	logger *slog.Logger

	// feedStore holds the loaded notification feed
	feedStore *store.Store
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notisearch",
	Short: "Search and highlight a notification feed",
	Long: `notisearch searches a notification feed and highlights the matches.

Matching ignores case and Vietnamese diacritics, so "lam" finds "Lâm" and
"dang" finds "Đặng". Long titles are cut so the first match stays visible.

Running notisearch without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		source := feedSource()
		if source == "" {
			logger.Debug("no feed configured")
			feedStore = store.NewStore(nil)
			return nil
		}

		adapter, err := input.NewAdapter(source)
		if err != nil {
			return fmt.Errorf("failed to create feed adapter: %w", err)
		}
		feedStore = store.NewStore(adapter)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if feedStore != nil {
			return feedStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.feed, "feed", "",
		"Feed file (.json, .yaml) or - for stdin (default: ~/.local/share/notisearch/noti.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/notisearch/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// feedSource returns the feed given on the command line or in the config.
func feedSource() string {
	if globalOpts.feed != "" {
		return globalOpts.feed
	}
	if cfg != nil {
		return cfg.Feed.Path
	}
	return ""
}

// isFileFeed reports whether the feed is a file that can be watched.
func isFileFeed(source string) bool {
	return source != "" && source != "-" && source != "stdin"
}
