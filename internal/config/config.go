// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/LongTran04/notisearch/internal/search"
)

// Default configuration values.
const (
	DefaultWindow       = "compact"
	DefaultAccent       = "#3BB57A"
	DefaultUnreadMarker = "●"
	DefaultFormat       = "plain"
	DefaultFeedFile     = "noti.json"
)

// WindowCustom selects the threshold/back_offset values from the file
// instead of a preset.
const WindowCustom = "custom"

// Config represents the notisearch configuration.
type Config struct {
	Search    SearchConfig    `toml:"search"`
	Style     StyleConfig     `toml:"style"`
	Output    OutputConfig    `toml:"output"`
	Feed      FeedConfig      `toml:"feed"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// SearchConfig holds title windowing options.
type SearchConfig struct {
	Window     string `toml:"window"`      // compact, wide, custom
	Threshold  int    `toml:"threshold"`   // custom only
	BackOffset int    `toml:"back_offset"` // custom only
}

// StyleConfig holds rendering colours and markers.
type StyleConfig struct {
	Accent       string `toml:"accent"`        // search match colour
	UnreadMarker string `toml:"unread_marker"` // prefix for unread rows
	Color        bool   `toml:"color"`         // false renders plain markers
}

// OutputConfig holds default output options.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, ids
}

// FeedConfig holds the default feed location.
type FeedConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"` // reload the TUI when the feed changes
}

// ClipboardConfig holds the clipboard command used by the TUI.
type ClipboardConfig struct {
	Command string `toml:"command"` // empty auto-detects wl-copy, xclip, xsel or pbcopy
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Window: DefaultWindow,
		},
		Style: StyleConfig{
			Accent:       DefaultAccent,
			UnreadMarker: DefaultUnreadMarker,
			Color:        true,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Feed: FeedConfig{
			Path:  filepath.Join(DataPath(), DefaultFeedFile),
			Watch: true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notisearch", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notisearch")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if _, err := cfg.Window(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Window resolves the configured title window.
func (c *Config) Window() (search.Window, error) {
	if strings.EqualFold(strings.TrimSpace(c.Search.Window), WindowCustom) {
		w := search.Window{
			Threshold:  c.Search.Threshold,
			BackOffset: c.Search.BackOffset,
		}
		if err := w.Validate(); err != nil {
			return search.Window{}, fmt.Errorf("invalid [search] settings: %w", err)
		}
		return w, nil
	}
	return search.ParseWindow(c.Search.Window)
}

// SearchOptions returns engine options built from the configuration.
func (c *Config) SearchOptions() (search.Options, error) {
	w, err := c.Window()
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{Window: w}, nil
}
