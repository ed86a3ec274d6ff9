package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/embers/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.gcfg")
	require.NoError(t, os.WriteFile(path, []byte("[Page]\nWidth = 800\nLayer = petals\n"), 0o644))

	cfg, err := loadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Page.Width)
	assert.Equal(t, []string{"petals"}, cfg.Page.Layers())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.gcfg"), false)
	assert.Error(t, err)
}
