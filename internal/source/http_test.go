package source

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/metrics"
)

var fastRetry = config.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

func newTestHTTP(t *testing.T, url string, retry config.RetryConfig) *HTTP {
	t.Helper()
	src, err := NewHTTP(HTTPOptions{BaseURL: url, Timeout: 2 * time.Second, Retry: retry})
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func TestHTTPEndpoints(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	src := newTestHTTP(t, srv.URL+"/", fastRetry)
	ctx := context.Background()

	body, err := src.Current(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "/api/current", gotPath)

	_, err = src.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/stats", gotPath)

	tests := []struct {
		kind  metrics.HistoryKind
		hours int
		want  string
	}{
		{metrics.HistoryCPU, 24, "hours=24"},
		{metrics.HistoryMemory, 0, "hours=1"},
		{metrics.HistoryCPU, 5000, "hours=2160"},
	}
	for _, tt := range tests {
		_, err := src.History(ctx, tt.kind, tt.hours)
		require.NoError(t, err)
		assert.Equal(t, "/api/history/"+string(tt.kind), gotPath)
		assert.Equal(t, tt.want, gotQuery)
	}
}

func TestHTTPBasePathPreserved(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	src := newTestHTTP(t, srv.URL+"/monitor", fastRetry)
	_, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/monitor/api/current", gotPath)
}

func TestHTTPRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"timestamp":"2024-03-01T12:00:00Z"}`))
	}))
	defer srv.Close()

	log := logger.NewBufferLogger()
	src, err := NewHTTP(HTTPOptions{BaseURL: srv.URL, Retry: fastRetry, Logger: log})
	require.NoError(t, err)
	defer src.Close()

	body, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), "timestamp")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.True(t, log.Contains("warn", "503"))
}

func TestHTTPGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := newTestHTTP(t, srv.URL, fastRetry)
	_, err := src.Current(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))
	assert.Contains(t, err.Error(), "/api/current")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var status *StatusError
	require.True(t, stderrors.As(err, &status))
	assert.Equal(t, http.StatusInternalServerError, status.Code)
	assert.Equal(t, "boom", status.Body)
}

func TestHTTPDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := newTestHTTP(t, srv.URL, fastRetry)
	_, err := src.History(context.Background(), "disk", 24)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := newTestHTTP(t, srv.URL, config.RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := src.Current(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHTTPUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	src := newTestHTTP(t, url, config.RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond})
	_, err := src.Current(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransport))
}

func TestNewHTTPInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "://x"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewHTTP(HTTPOptions{BaseURL: raw})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestHTTPCloseClosesTunnel(t *testing.T) {
	rec := &closeRecorder{}
	src, err := NewHTTP(HTTPOptions{BaseURL: "http://localhost:5000", Closer: rec})
	require.NoError(t, err)
	require.NoError(t, src.Close())
	assert.True(t, rec.closed)
}

func TestStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "unexpected status code 502", (&StatusError{Code: 502}).Error())
	assert.Equal(t, "unexpected status code 404: nope", (&StatusError{Code: 404, Body: "nope"}).Error())
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&StatusError{Code: 500}))
	assert.True(t, retryable(&StatusError{Code: 503}))
	assert.False(t, retryable(&StatusError{Code: 404}))
	assert.False(t, retryable(&StatusError{Code: 400}))
	assert.True(t, retryable(stderrors.New("connection reset")))
}
