package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_LoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg := DefaultConfig()
	cfg.Source.URL = "http://pi:5000"
	cfg.Dashboard.Skin = "classic"
	cfg.Thresholds.Disk = ThresholdValues{Warning: 70, Critical: 90}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`# backend on the NAS
source:
  url: http://old:5000 # keep me
dashboard:
  skin: classic
`), 0o644))

	require.NoError(t, SetValue(path, "source.url", "http://new:5000"))
	require.NoError(t, SetValue(path, "source.ssh", "nas"))
	require.NoError(t, SetValue(path, "render.scale", "3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# backend on the NAS")
	assert.Contains(t, text, "http://new:5000")
	assert.NotContains(t, text, "http://old:5000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://new:5000", cfg.Source.URL)
	assert.Equal(t, "nas", cfg.Source.SSH)
	assert.Equal(t, 3.0, cfg.Render.Scale)
	assert.Equal(t, "classic", cfg.Dashboard.Skin)
}

func TestSetValue_Errors(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, SetValue(filepath.Join(dir, "missing.yaml"), "source.url", "x"))

	list := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(list, []byte("- a\n- b\n"), 0o644))
	assert.Error(t, SetValue(list, "source.url", "x"))

	scalarSection := filepath.Join(dir, "scalar.yaml")
	require.NoError(t, os.WriteFile(scalarSection, []byte("source: none\n"), 0o644))
	assert.Error(t, SetValue(scalarSection, "source.url", "x"))
}
