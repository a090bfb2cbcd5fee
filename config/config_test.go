package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soocke/crop-widget-go/domain/geometry"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad_PersistsSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.SetSelection(geometry.Rect{X: 10.4, Y: 20.6, W: 100, H: 50})
	cfg.SizePolicy = "floor"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, &geometry.Rect{X: 10, Y: 21, W: 100, H: 50}, loaded.Selection())
	require.Equal(t, geometry.PolicyFloor, loaded.Policy())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	cfg, err := Load(path)
	require.Error(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestValidate_Normalizes(t *testing.T) {
	cfg := &Config{MinSize: -1, SizePolicy: "stretch", SelectionW: -5}
	require.Error(t, cfg.Validate())
	require.Equal(t, 32.0, cfg.MinSize)
	require.Equal(t, 200.0, cfg.PreferredSize)
	require.Equal(t, 800, cfg.MaxDisplayWidth)
	require.Equal(t, 8, cfg.ImageCacheSize)
	require.Equal(t, "cap", cfg.SizePolicy)
	require.Nil(t, cfg.Selection())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CROPPER_DEBUG":             "true",
		"CROPPER_DARK_MODE":         "1",
		"CROPPER_MIN_SIZE":          "48",
		"CROPPER_MAX_DISPLAY_WIDTH": "900",
		"CROPPER_SIZE_POLICY":       "FLOOR",
		"CROPPER_LISTEN_ADDR":       "127.0.0.1:8765",
		"CROPPER_IMAGE_CACHE_SIZE":  "lots",
	}
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	require.Error(t, err)
	require.Contains(t, err.Error(), "CROPPER_IMAGE_CACHE_SIZE")
	require.True(t, cfg.Debug)
	require.True(t, cfg.DarkMode)
	require.Equal(t, 48.0, cfg.MinSize)
	require.Equal(t, 900, cfg.MaxDisplayWidth)
	require.Equal(t, 8, cfg.ImageCacheSize)
	require.Equal(t, geometry.PolicyFloor, cfg.Policy())
	require.Equal(t, "127.0.0.1:8765", cfg.ListenAddr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CROPPER_PREFERRED_SIZE=120\n"), 0o644))
	t.Setenv("CROPPER_PREFERRED_SIZE", "")
	os.Unsetenv("CROPPER_PREFERRED_SIZE")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(nil))
	require.Equal(t, 120.0, cfg.PreferredSize)
}
