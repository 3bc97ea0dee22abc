package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/metrics"
)

// maxBody bounds how much of a response is read.
const maxBody = 32 << 20

// HTTPOptions configures an HTTP source.
type HTTPOptions struct {
	BaseURL string
	Timeout time.Duration
	Retry   config.RetryConfig

	// DialContext replaces the transport's dialer, e.g. with an SSH tunnel.
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)
	// Closer is closed with the source.
	Closer io.Closer

	Logger logger.Logger
}

// HTTP reads the backend's REST API.
type HTTP struct {
	base    *url.URL
	client  *http.Client
	retry   config.RetryConfig
	backoff *Backoff
	closer  io.Closer
	log     logger.Logger
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}

// NewHTTP creates an HTTP source for the backend at opts.BaseURL.
func NewHTTP(opts HTTPOptions) (*HTTP, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Host == "" {
		if err == nil {
			err = fmt.Errorf("missing host")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid backend URL '%s'", opts.BaseURL),
			"Use a full URL such as http://nas:5000")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.DialContext != nil {
		transport.DialContext = opts.DialContext
	}

	retry := opts.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	return &HTTP{
		base:    base,
		client:  &http.Client{Timeout: opts.Timeout, Transport: transport},
		retry:   retry,
		backoff: NewBackoff(retry.InitialDelay, retry.MaxDelay),
		closer:  opts.Closer,
		log:     log,
	}, nil
}

func (h *HTTP) Current(ctx context.Context) ([]byte, error) {
	return h.get(ctx, "/api/current", nil)
}

// History clamps hours into the accepted window before asking.
func (h *HTTP) History(ctx context.Context, kind metrics.HistoryKind, hours int) ([]byte, error) {
	q := url.Values{"hours": {strconv.Itoa(ClampHours(hours))}}
	return h.get(ctx, "/api/history/"+string(kind), q)
}

func (h *HTTP) Stats(ctx context.Context) ([]byte, error) {
	return h.get(ctx, "/api/stats", nil)
}

func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	if h.closer != nil {
		return h.closer.Close()
	}
	return nil
}

// get retries transport failures and 5xx responses with backoff. A
// cancelled context ends the loop with the context's error.
func (h *HTTP) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := *h.base
	u.Path = h.base.Path + path
	u.RawQuery = query.Encode()
	endpoint := u.String()

	var lastErr error
	for attempt := 0; attempt < h.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := h.backoff.NextDelay(attempt - 1)
			h.log.Debug("retrying %s in %s (attempt %d/%d)", path, delay, attempt+1, h.retry.MaxAttempts)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := h.do(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		if !retryable(err) {
			break
		}
		h.log.Warn("request to %s failed: %v", path, err)
	}
	return nil, errors.NewTransport(path, lastErr)
}

func (h *HTTP) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func retryable(err error) bool {
	var status *StatusError
	if stderrors.As(err, &status) {
		return status.Code >= 500
	}
	return true
}
