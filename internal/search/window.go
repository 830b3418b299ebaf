package search

import (
	"errors"
	"fmt"
	"strings"
)

// Window controls when a long title is cut so its first match stays
// visible. A match starting after Threshold moves the title start to
// BackOffset runes before the match.
type Window struct {
	Threshold  int `json:"threshold" toml:"threshold"`
	BackOffset int `json:"back_offset" toml:"back_offset"`
}

// Window presets.
var (
	WindowCompact = Window{Threshold: 30, BackOffset: 20}
	WindowWide    = Window{Threshold: 40, BackOffset: 30}
)

// ErrInvalidWindow is returned for negative window settings.
var ErrInvalidWindow = errors.New("window threshold and back offset must not be negative")

// ParseWindow returns the named preset.
// Accepts: compact, wide.
func ParseWindow(name string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "compact", "":
		return WindowCompact, nil
	case "wide":
		return WindowWide, nil
	default:
		return Window{}, fmt.Errorf("unknown window preset: %s (use compact or wide)", name)
	}
}

// Validate checks that the window is usable.
func (w Window) Validate() error {
	if w.Threshold < 0 || w.BackOffset < 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Start returns the rune index the displayed title begins at.
// Zero means the title is shown whole.
func (w Window) Start(primary Range, ok bool) int {
	if !ok || primary.Empty() || primary.Start <= w.Threshold {
		return 0
	}
	return max(primary.Start-w.BackOffset, 0)
}

// SelectWindow returns the title to display for the given primary match.
func SelectWindow(title string, primary Range, ok bool, w Window) string {
	return Suffix(title, w.Start(primary, ok))
}
