// Package clients provides the HTTP collaborator used by the request loop.
// It wraps net/http with a decorator chain so cross-cutting behavior, retry
// in particular, stays out of the pagination logic.
package clients

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/pkg/metrics"
	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// DoFunc issues one HTTP request
type DoFunc func(req *http.Request) (*http.Response, error)

// Decorator wraps a DoFunc with cross-cutting behavior
type Decorator func(next DoFunc) DoFunc

// Options configures the HTTP client
type Options struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Client is a retrying HTTP client scoped to one API base URL
type Client struct {
	baseURL   string
	userAgent string
	do        DoFunc
	logger    *zap.Logger
}

// New creates a client with the retry decorator already applied
func New(opts Options, logger *zap.Logger) *Client {
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		do:        httpClient.Do,
		logger:    logger.With(zap.String("component", "http_client")),
	}

	policy := NewRetryPolicy(opts.RetryAttempts, opts.RetryDelay)
	c.Use(RetryDecorator(policy, c.logger))

	return c
}

// Use wraps the request path with a decorator. Decorators apply outermost
// last, so a decorator added after construction sees retried requests.
func (c *Client) Use(d Decorator) {
	c.do = d(c.do)
}

// Get issues a GET request against the configured base URL and returns the
// response body. The passed context bounds the whole attempt chain.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeConnection, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.do(req)
	metrics.RequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.HTTPRequests.WithLabelValues(path, "error").Inc()
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeConnection, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.HTTPRequests.WithLabelValues(path, "error").Inc()
		return nil, taperrors.Wrap(err, taperrors.ErrorTypeConnection, "failed to read response body")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.HTTPRequests.WithLabelValues(path, "denied").Inc()
		return nil, taperrors.Newf(taperrors.ErrorTypeAuthentication,
			"request rejected with status %d: %s", resp.StatusCode, excerpt(body))
	case resp.StatusCode != http.StatusOK:
		metrics.HTTPRequests.WithLabelValues(path, "error").Inc()
		return nil, taperrors.Newf(taperrors.ErrorTypeConnection,
			"unexpected status %d: %s", resp.StatusCode, excerpt(body))
	}

	metrics.HTTPRequests.WithLabelValues(path, "ok").Inc()
	return body, nil
}

// excerpt trims a response body for error messages
func excerpt(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// RetryDecorator retries transport failures, 429 and 5xx responses with the
// given policy. Other responses pass through untouched.
func RetryDecorator(policy *RetryPolicy, logger *zap.Logger) Decorator {
	return func(next DoFunc) DoFunc {
		return func(req *http.Request) (*http.Response, error) {
			var resp *http.Response
			err := policy.Execute(req.Context(), func() error {
				r, err := next(req)
				if err != nil {
					return taperrors.Wrap(err, taperrors.ErrorTypeConnection, "transport failure")
				}
				switch {
				case r.StatusCode == http.StatusTooManyRequests:
					drain(r)
					return taperrors.New(taperrors.ErrorTypeRateLimit, "rate limited by API")
				case r.StatusCode >= http.StatusInternalServerError:
					drain(r)
					return taperrors.Newf(taperrors.ErrorTypeConnection, "server error %d", r.StatusCode)
				}
				resp = r
				return nil
			}, func(err error) bool {
				retry := taperrors.IsRetryable(err)
				if retry {
					logger.Warn("retrying request",
						zap.String("url", req.URL.Path),
						zap.Error(err))
				}
				return retry
			})
			return resp, err
		}
	}
}

// drain discards a response body so the connection can be reused
func drain(r *http.Response) {
	_, _ = io.Copy(io.Discard, r.Body)
	_ = r.Body.Close()
}
