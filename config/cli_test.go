package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	cfg, opts, err := ParseArgs("test", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, opts.Headless)
	assert.Equal(t, 1, opts.Matches)
	assert.Equal(t, "info", opts.LogLevel)
}

func TestParseArgsFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	fileCfg := Default()
	fileCfg.Width = 30
	fileCfg.Height = 25
	require.NoError(t, fileCfg.Save(path))

	cfg, opts, err := ParseArgs("test", []string{"-config", path, "-width", "12", "-headless", "-matches", "4", "-greedy"})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
	assert.True(t, opts.Headless)
	assert.True(t, opts.Greedy)
	assert.Equal(t, 4, opts.Matches)
	assert.Equal(t, path, opts.ConfigPath)
}

func TestParseArgsErrors(t *testing.T) {
	_, _, err := ParseArgs("test", []string{"-bogus"})
	assert.Error(t, err)

	_, _, err = ParseArgs("test", []string{"-config", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}
