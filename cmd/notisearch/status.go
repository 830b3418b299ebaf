package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/LongTran04/notisearch/internal/core"
	"github.com/LongTran04/notisearch/internal/model"
)

var statusOpts struct {
	query string
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text       string `json:"text"`
	Alt        string `json:"alt,omitempty"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the unread count of the feed in Waybar's custom module JSON format.

With --query only rows matching the query are counted.

  "custom/notifications": {
    "exec": "notisearch status",
    "interval": 5,
    "return-type": "json",
    "on-click": "notisearch tui"
  }`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.query, "query", "q", "",
		"Only count rows matching this query")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if err := feedStore.Hydrate(ctx); err != nil {
		logger.Warn("failed to load feed", "error", err)
		return outputStatus(WaybarStatus{Text: "", Alt: "error", Class: "error"})
	}

	opts, err := engineOptions()
	if err != nil {
		return err
	}

	results, err := feedStore.Search(ctx, statusOpts.query, opts)
	if err != nil {
		return err
	}

	notifications := make([]model.Notification, len(results))
	for i, r := range results {
		notifications[i] = r.Item
	}

	return outputStatus(generateStatus(notifications))
}

// generateStatus creates a WaybarStatus from the counted rows.
func generateStatus(notifications []model.Notification) WaybarStatus {
	total := len(notifications)
	unread := core.CountUnread(notifications)

	if total == 0 {
		return WaybarStatus{
			Text:  "",
			Alt:   "empty",
			Class: "empty",
		}
	}

	class := "read"
	if unread > 0 {
		class = "unread"
	}

	return WaybarStatus{
		Text:       fmt.Sprintf("%d", unread),
		Alt:        class,
		Tooltip:    fmt.Sprintf("%d unread\n%d total", unread, total),
		Class:      class,
		Percentage: min(unread, 100),
	}
}

// outputStatus writes the status as JSON.
func outputStatus(status WaybarStatus) error {
	encoder := json.NewEncoder(os.Stdout)
	return encoder.Encode(status)
}
