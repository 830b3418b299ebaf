package tui

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/LongTran04/notisearch/internal/config"
)

// ErrNoClipboard is returned when no clipboard command can be found.
var ErrNoClipboard = errors.New("no clipboard command available")

// copyText copies text to the system clipboard.
func copyText(text string, cfg *config.Config) error {
	cmd := detectClipboardCommand(cfg)
	if cmd == "" {
		return ErrNoClipboard
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return errors.New("invalid clipboard command")
	}

	// Execute with text as stdin
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}

// detectClipboardCommand returns the clipboard command to use.
func detectClipboardCommand(cfg *config.Config) string {
	if cfg != nil && cfg.Clipboard.Command != "" {
		return cfg.Clipboard.Command
	}

	// Wayland
	if _, err := exec.LookPath("wl-copy"); err == nil {
		return "wl-copy"
	}

	// X11
	if _, err := exec.LookPath("xclip"); err == nil {
		return "xclip -selection clipboard"
	}

	if _, err := exec.LookPath("xsel"); err == nil {
		return "xsel --clipboard --input"
	}

	// macOS
	if _, err := exec.LookPath("pbcopy"); err == nil {
		return "pbcopy"
	}

	return ""
}
