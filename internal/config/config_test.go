package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/cstrafe/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[keys]
forward = "e"
backward = "D"

[filter]
max-shot-delay = 200.0
max-cs-delay = 180.0

[overlay]
size = 14
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Keys.Forward)
	assert.Equal(t, "e", *cfg.Keys.Forward)
	assert.Nil(t, cfg.Keys.Left, "left stays unset")
	require.NotNil(t, cfg.Filter.MaxShotDelay)
	assert.Equal(t, 200.0, *cfg.Filter.MaxShotDelay)
	require.NotNil(t, cfg.Filter.MaxCSDelay)
	assert.Equal(t, 180.0, *cfg.Filter.MaxCSDelay)
	require.NotNil(t, cfg.Overlay.Size)
	assert.Equal(t, 14, *cfg.Overlay.Size)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keys]\njump = \"x\"\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "jump")
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "cstrafe", "config.toml"), DefaultConfigPath())
}

func TestResolveKeys(t *testing.T) {
	got, err := ResolveKeys(model.KeyBindings{Forward: "esdf", Backward: "d", Left: "", Right: " f "})
	require.NoError(t, err)
	assert.Equal(t, model.KeyBindings{Forward: "E", Backward: "D", Left: "A", Right: "F"}, got)
}

func TestResolveKeysRejectsSymbols(t *testing.T) {
	for _, key := range []string{";", "é", "["} {
		_, err := ResolveKeys(model.KeyBindings{Forward: key})
		assert.ErrorIs(t, err, ErrInvalidBinding, key)
	}
}
