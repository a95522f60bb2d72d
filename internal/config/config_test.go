package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 80, cfg.Height)
	assert.False(t, cfg.Resizable)
	assert.Equal(t, 3*time.Second, cfg.SnapshotInterval)
	assert.Equal(t, 20, cfg.HistorySize)
	require.Len(t, cfg.Toolbar, 1)
	assert.Equal(t, "style", cfg.Toolbar[0].Name)
	assert.Equal(t, []string{"bold", "italic", "underline", "strikethrough"}, cfg.Toolbar[0].Buttons)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
height: 200
resizable: true
snapshot_interval: 500ms
toolbar:
  - name: style
    buttons: [bold]
  - name: tools
    buttons: [link, codeview]
`))
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Height)
	assert.True(t, cfg.Resizable)
	assert.Equal(t, 500*time.Millisecond, cfg.SnapshotInterval)
	assert.Equal(t, 20, cfg.HistorySize)
	assert.Equal(t, []ToolbarGroup{
		{Name: "style", Buttons: []string{"bold"}},
		{Name: "tools", Buttons: []string{"link", "codeview"}},
	}, cfg.Toolbar)
}

func TestParsePreset(t *testing.T) {
	cfg, err := Parse([]byte("preset: full\n"))
	require.NoError(t, err)
	assert.Equal(t, Preset("full"), cfg.Toolbar)

	_, err = Parse([]byte("preset: fancy\n"))
	assert.ErrorContains(t, err, "unknown toolbar preset")
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero height", func(c *Config) { c.Height = 0 }, "height must be positive"},
		{"no history", func(c *Config) { c.HistorySize = 0 }, "history_size must be positive"},
		{"negative interval", func(c *Config) { c.SnapshotInterval = -time.Second }, "snapshot_interval"},
		{"unnamed group", func(c *Config) { c.Toolbar = []ToolbarGroup{{Buttons: []string{"bold"}}} }, "has no name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("height: 120\ninitial_content: <b>hi</b>\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Height)
	assert.Equal(t, "<b>hi</b>", cfg.InitialContent)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
