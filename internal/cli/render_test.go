package cli

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
)

func renderConfig(t *testing.T, url string) *config.Config {
	cfg := testConfig(url)
	cfg.Render.OutDir = filepath.Join(t.TempDir(), "out")
	cfg.Render.Width = 80
	cfg.Render.Height = 60
	cfg.Render.Scale = 1
	return cfg
}

func TestRenderCommand_WritesEveryWidget(t *testing.T) {
	srv := newBackend(t, healthySnapshot)
	cfg := renderConfig(t, srv.URL)

	var out bytes.Buffer
	require.NoError(t, renderCommand(context.Background(), cfg, &out))

	for _, name := range []string{
		"gauge-temperature", "gauge-memory", "bar-memory",
		"wave-temperature", "wave-load", "wave-memory",
		"bar-disk-root", "tile-disk-root", "tile-container-plex",
		"chart-temperature", "chart-load", "chart-memory",
	} {
		path := filepath.Join(cfg.Render.OutDir, name+".png")
		assert.FileExists(t, path)
		assert.Contains(t, out.String(), path)
	}

	f, err := os.Open(filepath.Join(cfg.Render.OutDir, "gauge-temperature.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestRenderCommand_ScaleMultipliesPixels(t *testing.T) {
	srv := newBackend(t, healthySnapshot)
	cfg := renderConfig(t, srv.URL)
	cfg.Render.Scale = 2

	require.NoError(t, renderCommand(context.Background(), cfg, &bytes.Buffer{}))

	f, err := os.Open(filepath.Join(cfg.Render.OutDir, "gauge-memory.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestRenderCommand_LiveFailureStillWritesPlaceholders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/current", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	mux.HandleFunc("/api/history/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	cfg := renderConfig(t, srv.URL)

	var out bytes.Buffer
	err := renderCommand(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))

	assert.FileExists(t, filepath.Join(cfg.Render.OutDir, "gauge-temperature.png"))
	assert.NoFileExists(t, filepath.Join(cfg.Render.OutDir, "bar-disk-root.png"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/", "root"},
		{"/data", "data"},
		{"/mnt/media disk", "mnt-media-disk"},
		{"plex", "plex"},
		{"home-assistant_1.2", "home-assistant_1.2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slug(tt.in), tt.in)
	}
}
