// Package source fetches raw telemetry payloads. A Source only moves
// bytes; turning them into snapshots is the metrics package's job.
package source

import (
	"context"
	"time"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// History windows the backend accepts, in hours.
const (
	MinHours = 1
	MaxHours = 2160
)

// Source delivers the backend's JSON documents.
type Source interface {
	// Current returns the point-in-time snapshot document.
	Current(ctx context.Context) ([]byte, error)
	// History returns the samples of one metric kind over the last hours.
	History(ctx context.Context, kind metrics.HistoryKind, hours int) ([]byte, error)
	// Stats returns the backend's storage statistics.
	Stats(ctx context.Context) ([]byte, error)
	Close() error
}

// ClampHours limits a history window to what the backend accepts.
func ClampHours(hours int) int {
	if hours < MinHours {
		return MinHours
	}
	if hours > MaxHours {
		return MaxHours
	}
	return hours
}

// Open builds the source described by cfg: the local collector, a direct
// HTTP client, or an HTTP client tunnelled over SSH.
func Open(ctx context.Context, cfg config.SourceConfig, log logger.Logger) (Source, error) {
	if log == nil {
		log = logger.Noop()
	}
	if cfg.Local {
		log.Debug("collecting from this machine")
		return NewLocal(LocalOptions{}), nil
	}

	opts := HTTPOptions{
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Retry:   cfg.Retry,
		Logger:  log,
	}
	if cfg.SSH == "" {
		return NewHTTP(opts)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tun, err := sshutil.Dial(ctx, cfg.SSH, timeout)
	if err != nil {
		return nil, err
	}
	log.Debug("tunnelling %s through %s (%s)", cfg.URL, tun.Host, tun.Address)
	opts.DialContext = tun.DialContext
	opts.Closer = tun

	src, err := NewHTTP(opts)
	if err != nil {
		tun.Close()
		return nil, err
	}
	return src, nil
}
