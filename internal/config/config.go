package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ToolbarGroup is one named group of toolbar buttons
type ToolbarGroup struct {
	Name    string   `yaml:"name"`
	Buttons []string `yaml:"buttons"`
}

// Config holds configuration options for an editor instance
type Config struct {
	// Height of the editing area in pixels
	Height int `yaml:"height"`

	// Resizable turns the fixed height into a minimum height the user can grow
	Resizable bool `yaml:"resizable"`

	// Preset names a built-in toolbar used when Toolbar is not set
	Preset string `yaml:"preset"`

	// Toolbar lists the button groups in display order
	Toolbar []ToolbarGroup `yaml:"toolbar"`

	// InitialContent is loaded into the visual editor on creation
	InitialContent string `yaml:"initial_content"`

	// SnapshotInterval is the window coalescing typing into one undo snapshot
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`

	// HistorySize bounds the number of undo snapshots kept
	HistorySize int `yaml:"history_size"`
}

// Default returns the configuration of a bare editor
func Default() Config {
	return Config{
		Height:           80,
		Resizable:        false,
		Preset:           "default",
		Toolbar:          Preset("default"),
		InitialContent:   "",
		SnapshotInterval: 3 * time.Second,
		HistorySize:      20,
	}
}

// Preset returns the toolbar of a built-in preset, nil when unknown
func Preset(name string) []ToolbarGroup {
	switch strings.ToLower(name) {
	case "", "default":
		return []ToolbarGroup{
			{Name: "style", Buttons: []string{"bold", "italic", "underline", "strikethrough"}},
		}
	case "minimal":
		return []ToolbarGroup{
			{Name: "style", Buttons: []string{"bold", "italic"}},
		}
	case "full":
		return []ToolbarGroup{
			{Name: "style", Buttons: []string{"bold", "italic", "underline", "strikethrough"}},
			{Name: "extra", Buttons: []string{"subscript", "superscript", "nbsp"}},
			{Name: "tools", Buttons: []string{"clear", "link", "codeview"}},
		}
	default:
		return nil
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. An explicit toolbar wins over the
// preset.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Toolbar = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Toolbar == nil {
		cfg.Toolbar = Preset(cfg.Preset)
		if cfg.Toolbar == nil {
			return Config{}, fmt.Errorf("unknown toolbar preset: %s", cfg.Preset)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values an editor cannot work with
func (c Config) Validate() error {
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive, got %d", c.HistorySize)
	}
	if c.SnapshotInterval < 0 {
		return fmt.Errorf("snapshot_interval must not be negative, got %s", c.SnapshotInterval)
	}
	for i, group := range c.Toolbar {
		if group.Name == "" {
			return fmt.Errorf("toolbar group %d has no name", i)
		}
	}
	return nil
}
