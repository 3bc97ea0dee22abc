package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/vitals/internal/config"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const healthySnapshot = `{
  "timestamp": "2024-03-01T12:00:00Z",
  "cpu": {
    "temperature": {"coretemp": {"type": "x86_pkg_temp", "temp_celsius": 48.0}},
    "load": {"load_1min": 0.4, "load_5min": 0.5, "load_15min": 0.6}
  },
  "memory": {"total_mb": 16000, "used_mb": 6400, "percent_used": 40.0},
  "disk": {
    "/": {"device": "/dev/sda1", "fstype": "ext4", "percent_used": 50.0, "used_gb": 50, "total_gb": 100}
  },
  "smart": {"/dev/sda": {"model": "WD Red", "serial": "X1", "health_passed": true}},
  "docker": {"plex": {"status": "running", "health": "healthy", "memory_percent": 12.5, "memory_mb": 2000}},
  "processes": {"processes": [{"pid": 1, "name": "init", "mem_mb": 10, "mem_percent": 0.1}]}
}`

const criticalSnapshot = `{
  "timestamp": "2024-03-01T12:00:00Z",
  "cpu": {"temperature": {"coretemp": {"type": "cpu", "temp_celsius": 91.0}}},
  "memory": {"percent_used": 40.0},
  "disk": {"/data": {"device": "/dev/nvme0n1p2", "percent_used": 97.0, "used_gb": 970, "total_gb": 1000}},
  "docker": {"db": {"error": "stats timed out"}}
}`

const cpuHistoryBody = `{"data": [
  {"timestamp": "2024-03-01T10:00:00Z", "data": {"temperature": {"z": {"type": "cpu", "temp_celsius": 45}}, "load": {"load_1min": 0.1, "load_5min": 0.2, "load_15min": 0.3}}},
  {"timestamp": "2024-03-01T11:00:00Z", "data": {"temperature": {"z": {"type": "cpu", "temp_celsius": 47}}, "load": {"load_1min": 0.4, "load_5min": 0.5, "load_15min": 0.6}}}
]}`

const memoryHistoryBody = `{"data": [
  {"timestamp": "2024-03-01 10:00:00", "data": {"percent_used": 38}},
  {"timestamp": "2024-03-01 11:00:00", "data": {"percent_used": 40}}
]}`

// newBackend serves the telemetry API with current as /api/current.
func newBackend(t *testing.T, current string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/current", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(current))
	})
	mux.HandleFunc("/api/history/cpu", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cpuHistoryBody))
	})
	mux.HandleFunc("/api/history/memory", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(memoryHistoryBody))
	})
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_records": 10, "database_size_mb": 0.5}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testConfig points the defaults at url with retries disabled.
func testConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Source.URL = url
	cfg.Source.Retry.MaxAttempts = 1
	return cfg
}
