package main

import (
	"github.com/spf13/cobra"

	"github.com/LongTran04/notisearch/internal/tui"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search screen",
	Long: `Launch the interactive terminal search screen.

Every keystroke in the search bar recomputes the list: rows are filtered,
long titles are cut to keep the first match visible and matches are
highlighted. Leaving search with esc resets every row.

Key bindings:
  /           Search
  esc         Leave search / clear query
  j/k, ↑/↓    Navigate list
  enter       View the full message
  c           Copy message to clipboard
  C / alt+c   Copy results as JSON / YAML
  r           Reload feed
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload when the feed file changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	watchPath := ""
	source := feedSource()
	if cfg.Feed.Watch && !tuiOpts.noWatch && isFileFeed(source) {
		watchPath = source
	}

	return tui.Run(tui.RunOptions{
		Config:    cfg,
		Store:     feedStore,
		WatchPath: watchPath,
	})
}
